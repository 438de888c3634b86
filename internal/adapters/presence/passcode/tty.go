package passcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bnema/yzterm/internal/domain"
	"golang.org/x/term"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

// TTYPrompter reads a line from the controlling terminal in raw mode so
// Ctrl-C reaches us as a byte instead of a signal. The read is not
// interruptible by ctx.
func TTYPrompter(_ context.Context, label string) (string, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return "", fmt.Errorf("open terminal: %w", err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	fmt.Fprintf(tty, "%s: ", label)
	line, err := readHidden(tty)
	fmt.Fprint(tty, "\r\n")

	return line, err
}

func readHidden(r io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)

	for {
		n, err := r.Read(buf)
		if n == 1 {
			switch c := buf[0]; c {
			case '\r', '\n':
				return string(line), nil
			case keyCtrlC:
				return "", domain.ErrUserCanceled
			case keyCtrlD:
				if len(line) == 0 {
					return "", domain.ErrUserCanceled
				}
			case keyBackspace, keyDelete:
				if len(line) > 0 {
					_, size := utf8.DecodeLastRune(line)
					line = line[:len(line)-size]
				}
			default:
				line = append(line, c)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", domain.ErrUserCanceled
			}
			return "", err
		}
	}
}
