package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bnema/yzterm/internal/application"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// detachKey is Ctrl-].
const detachKey = 0x1d

type terminalRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func (r *terminalRenderer) Output(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.out, text)
}

func (r *terminalRenderer) Clear() {
	r.Output("\r\n")
}

type terminalAlerter struct {
	out   io.Writer
	title lipgloss.Style
}

func newTerminalAlerter(out io.Writer) *terminalAlerter {
	return &terminalAlerter{
		out:   out,
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

func (a *terminalAlerter) Alert(title, message string) {
	_, _ = fmt.Fprintf(a.out, "\r\n%s %s\r\n", a.title.Render(title+":"), message)
}

func newConnectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <host-id>",
		Short: "Open an interactive shell on a saved host",
		Long:  "Open an interactive shell on a saved host. Press Ctrl-] to detach.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := cmd.InOrStdin()
			out := cmd.OutOrStdout()

			cols, rows := terminalSize(out)
			sessions := app.newSessionManager(cols, rows)
			defer sessions.CloseAll()

			cfg := app.controllerConfig()
			cfg.ListingDelay = -1

			ctrl := application.NewController(application.ControllerDeps{
				Hosts:       app.hostRepo,
				Vault:       app.vault,
				Sessions:    sessions,
				Directories: app.directories,
				Transfers:   app.transfers,
				Renderer:    &terminalRenderer{out: out},
				Alerter:     newTerminalAlerter(cmd.ErrOrStderr()),
			}, cfg)

			if err := ctrl.Connect(ctx, domain.HostID(args[0])); err != nil {
				if errors.Is(err, domain.ErrUserCanceled) {
					return nil
				}
				return err
			}
			defer ctrl.Disconnect(context.Background())

			restore, err := makeRaw(in)
			if err != nil {
				return fmt.Errorf("enter raw mode: %w", err)
			}
			defer restore()

			stopResize := watchResize(out, ctrl)
			defer stopResize()

			detached := make(chan struct{})
			go pumpInput(in, ctrl, detached)

			select {
			case <-ctrl.Ended():
			case <-detached:
				_, _ = io.WriteString(out, "\r\nDetached\r\n")
			case <-ctx.Done():
			}

			return nil
		},
	}
}

// pumpInput forwards keystrokes until the detach key or end of input.
func pumpInput(in io.Reader, ctrl *application.Controller, detached chan<- struct{}) {
	buf := make([]byte, 1024)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			for i, b := range chunk {
				if b == detachKey {
					if i > 0 {
						_ = ctrl.Write(chunk[:i])
					}
					close(detached)
					return
				}
			}
			_ = ctrl.Write(chunk)
		}
		if err != nil {
			return
		}
	}
}

func makeRaw(in io.Reader) (func(), error) {
	file, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return func() {}, nil
	}

	state, err := term.MakeRaw(int(file.Fd()))
	if err != nil {
		return nil, err
	}

	return func() { _ = term.Restore(int(file.Fd()), state) }, nil
}

// terminalSize returns zero for both when out is not a terminal.
func terminalSize(out io.Writer) (uint16, uint16) {
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0, 0
	}

	width, height, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0
	}

	return uint16(width), uint16(height)
}
