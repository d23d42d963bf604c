//go:build !windows

package player

import (
	"crypto/rand"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/melodeck/melodeck/constant"
)

// mpv runs in its own process group so a Ctrl+C in the terminal reaches melodeck only.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// newSocketPath picks a fresh socket under os.TempDir, which is not /tmp on macOS.
func newSocketPath() (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Melodeck, suffix)), nil
}

// killProcess kills mpv together with anything it spawned, such as ytdl hooks.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
