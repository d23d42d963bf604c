package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/melodeck/melodeck/audio"
	"github.com/melodeck/melodeck/constant"
	"github.com/melodeck/melodeck/icon"
	"github.com/melodeck/melodeck/key"
	"github.com/melodeck/melodeck/style"
	"github.com/spf13/viper"
)

// CheckDependencies verifies that the selected backend can run on this system.
// A missing mpv binary is fatal; a build without sound output only prints a suggestion.
func CheckDependencies(backend string) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case constant.BackendMPV:
		path := viper.GetString(key.PlayerMPVPath)
		if _, err := exec.LookPath(path); err != nil {
			printDependencyBox(
				"Missing Dependency",
				fmt.Sprintf("The mpv binary '%s' was not found in your PATH.", path),
				installHint(),
			)
			os.Exit(1)
		}
	default:
		if !audio.Available {
			printDependencyBox(
				"No Sound Output",
				"This build cannot drive a sound device.",
				"melodeck --backend mpv",
			)
		}
	}
}

func installHint() string {
	switch runtime.GOOS {
	case "darwin":
		return "brew install mpv"
	case "linux":
		return "sudo apt install mpv"
	case "windows":
		return "scoop install mpv"
	default:
		return ""
	}
}

func printDependencyBox(title, body, suggestion string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	lines := []string{
		style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s %s", icon.Get(icon.Fail), title)),
		"",
		style.New().Foreground(style.Text).Render(body),
	}

	if suggestion != "" {
		lines = append(lines, "", "Try running:", "  "+style.New().Foreground(style.AccentColor).Bold(true).Render(suggestion))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
