package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/melodeck/melodeck/style"
)

const notificationLifetime = 3 * time.Second

type (
	notifyMsg      string
	clearNotifyMsg struct{ id int }
)

// notifier shows one short-lived status message next to the help line.
type notifier struct {
	message string
	id      int
}

func notify(message string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg(message)
	}
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notifyMsg:
		n.message = string(msg)
		n.id++
		id := n.id
		return tea.Tick(notificationLifetime, func(time.Time) tea.Msg {
			return clearNotifyMsg{id: id}
		})
	case clearNotifyMsg:
		// a newer message restarted the timer
		if msg.id == n.id {
			n.message = ""
		}
	}
	return nil
}

func (n *notifier) View() string {
	if n.message == "" {
		return ""
	}
	return style.Faint(n.message)
}
