package player

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/playback"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
	eventBuffer       = 128
)

var (
	// ErrNotRunning is returned by controls used before a track was loaded.
	ErrNotRunning = errors.New("mpv is not running")
	// ErrExited is reported when the mpv process goes away while a track is loaded.
	ErrExited = errors.New("mpv exited")
)

// MPV is a media element backed by an mpv process controlled over JSON-IPC.
// The process is started on the first Load and reused for later tracks.
type MPV struct {
	execPath   string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	listener   *EventListener

	mu      sync.Mutex // Protects socket writes
	startMu sync.Mutex
	stateMu sync.Mutex
	state   properties
	closing bool

	events *playback.Dispatcher
}

var _ playback.MediaHandle = (*MPV)(nil)

// NewMPV creates a new mpv element (does not start the process).
// execPath is the mpv binary, looked up in PATH when it has no separator.
func NewMPV(execPath string, sink playback.EventSink) *MPV {
	return &MPV{
		execPath: execPath,
		state:    newProperties(),
		events:   playback.NewDispatcher(sink, eventBuffer),
	}
}

// Load replaces the current file. mpv is started in the background if needed and
// failures are reported as an Error event.
func (m *MPV) Load(rawURL string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.stateMu.Lock()
	m.state.local = !strings.Contains(target, "://")
	m.stateMu.Unlock()

	go func() {
		if err := m.load(target); err != nil {
			m.events.Emit(playback.Event{Kind: playback.Error, Err: err})
		}
	}()
	return nil
}

func (m *MPV) load(target string) error {
	if err := m.ensureRunning(); err != nil {
		return err
	}

	// loaded paused; the state machine decides when to play
	if _, err := m.sendCommand("set_property", "pause", true); err != nil {
		return err
	}
	_, err := m.sendCommand("loadfile", target, "replace")
	return err
}

// ensureRunning starts mpv and its event listener unless they are already up.
func (m *MPV) ensureRunning() error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.cmd != nil {
		select {
		case <-m.exited:
		default:
			return nil
		}
	}

	socketPath, err := newSocketPath()
	if err != nil {
		return err
	}
	m.socketPath = socketPath

	cmd := exec.Command(m.execPath, mpvArgs(m.socketPath)...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.cmd = cmd
	m.exited = exited

	go func() {
		_ = cmd.Wait()
		close(exited)
		m.onExit()
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.onEvent)
	return m.listener.Start()
}

func mpvArgs(socketPath string) []string {
	return []string{
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--really-quiet",
		"--keep-open=yes",
		"--pause=yes",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
	}
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) onEvent(name string, data any) {
	m.stateMu.Lock()
	events := m.state.apply(name, data)
	m.stateMu.Unlock()

	for _, event := range events {
		m.events.Emit(event)
	}
}

func (m *MPV) onExit() {
	m.stateMu.Lock()
	closing := m.closing
	m.state = newProperties()
	m.stateMu.Unlock()

	if !closing {
		m.events.Emit(playback.Event{Kind: playback.Error, Err: ErrExited})
	}
}

func (m *MPV) running() bool {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.cmd == nil {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

func (m *MPV) Play() error {
	return m.set("pause", false)
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	if !m.running() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

func (m *MPV) SetVolume(volume float64) error {
	return m.set("volume", min(max(volume, 0), 1)*100)
}

func (m *MPV) Volume() float64 {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state.volume
}

func (m *MPV) Duration() float64 {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state.duration
}

func (m *MPV) CurrentTime() float64 {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state.timePos
}

func (m *MPV) Buffered() []playback.TimeRange {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state.buffered()
}

func (m *MPV) Paused() bool {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state.paused
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.stateMu.Lock()
	m.closing = true
	m.stateMu.Unlock()

	defer m.events.Close()

	if !m.running() {
		return nil
	}

	if m.listener != nil {
		m.listener.Stop()
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) set(property string, value any) error {
	if !m.running() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
// Prevents flag injection from track files.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		case "file":
			return filepath.Clean(filepath.FromSlash(u.Path)), nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}
