//go:build windows

package player

import (
	"errors"
	"os/exec"
	"syscall"
)

// ErrNoIPC is returned on Windows, where mpv only listens on named pipes.
var ErrNoIPC = errors.New("the mpv backend needs unix sockets, use the beep backend on windows")

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

func newSocketPath() (string, error) {
	return "", ErrNoIPC
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
