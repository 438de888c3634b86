//go:build !unix

package session

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

var errUnsupported = errors.New("pseudo-terminals are not supported on this platform")

func startPTY(*exec.Cmd, uint16, uint16) (*os.File, error) {
	return nil, errUnsupported
}

func setWinsize(*os.File, uint16, uint16) error {
	return errUnsupported
}

func signalGroup(int, syscall.Signal) error {
	return errUnsupported
}
