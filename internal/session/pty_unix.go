//go:build unix

package session

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func startPTY(cmd *exec.Cmd, rows, cols uint16) (*os.File, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("allocate pty: %w", err)
	}
	defer tty.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		_ = ptmx.Close()
		return nil, fmt.Errorf("set pty size: %w", err)
	}

	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
	cmd.SysProcAttr.Setctty = true

	if err := cmd.Start(); err != nil {
		_ = ptmx.Close()
		return nil, fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	master, err := pollableMaster(ptmx)
	if err != nil {
		_ = cmd.Process.Kill()
		go func() { _ = cmd.Wait() }()
		return nil, err
	}

	return master, nil
}

// pollableMaster re-opens the master descriptor in non-blocking mode so that
// reads park on the runtime poller instead of a blocked thread, and a Close
// from another goroutine interrupts a pending Read.
func pollableMaster(ptmx *os.File) (*os.File, error) {
	defer ptmx.Close()

	raw, err := ptmx.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("pty master conn: %w", err)
	}

	dupFD := -1
	var dupErr error
	if err := raw.Control(func(fd uintptr) {
		dupFD, dupErr = unix.Dup(int(fd))
	}); err != nil {
		return nil, fmt.Errorf("pty master control: %w", err)
	}
	if dupErr != nil {
		return nil, fmt.Errorf("dup pty master: %w", dupErr)
	}

	unix.CloseOnExec(dupFD)
	if err := unix.SetNonblock(dupFD, true); err != nil {
		_ = unix.Close(dupFD)
		return nil, fmt.Errorf("set pty master non-blocking: %w", err)
	}

	return os.NewFile(uintptr(dupFD), ptmx.Name()), nil
}

func setWinsize(master *os.File, cols, rows uint16) error {
	raw, err := master.SyscallConn()
	if err != nil {
		return err
	}

	var ioctlErr error
	if err := raw.Control(func(fd uintptr) {
		ioctlErr = unix.IoctlSetWinsize(int(fd), unix.TIOCSWINSZ, &unix.Winsize{Row: rows, Col: cols})
	}); err != nil {
		return err
	}

	return ioctlErr
}

func signalGroup(pid int, sig syscall.Signal) error {
	return unix.Kill(-pid, sig)
}
