//go:build unix

package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"
)

type resizer interface {
	Resize(cols, rows uint16) error
}

// watchResize forwards SIGWINCH to the remote PTY.
func watchResize(out io.Writer, target resizer) func() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-signals:
				cols, rows := terminalSize(out)
				if cols > 0 && rows > 0 {
					_ = target.Resize(cols, rows)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}
