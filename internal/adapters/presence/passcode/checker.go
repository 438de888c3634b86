// Package passcode gates vault reads behind a device passcode typed on the
// controlling terminal and verified against a bcrypt hash.
package passcode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

const DefaultAttempts = 3

// Prompter asks the user for a hidden line of input. It returns
// domain.ErrUserCanceled when the user aborts.
type Prompter func(ctx context.Context, label string) (string, error)

type Checker struct {
	hash     []byte
	prompt   Prompter
	attempts int
}

var _ ports.PresenceChecker = (*Checker)(nil)

func New(hash string, prompt Prompter) *Checker {
	return &Checker{
		hash:     []byte(strings.TrimSpace(hash)),
		prompt:   prompt,
		attempts: DefaultAttempts,
	}
}

// NewTTY prompts on /dev/tty.
func NewTTY(hash string) *Checker {
	return New(hash, TTYPrompter)
}

func (c *Checker) Challenge(ctx context.Context, reason string) error {
	if len(c.hash) == 0 {
		return fmt.Errorf("%w: no device passcode configured, run `yz vault passcode`", domain.ErrKeychain)
	}

	label := "Passcode"
	if reason != "" {
		label = reason + " - passcode"
	}

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := c.prompt(ctx, label)
		if err != nil {
			if errors.Is(err, domain.ErrUserCanceled) {
				return err
			}
			return fmt.Errorf("%w: read passcode: %w", domain.ErrKeychain, err)
		}
		if input == "" {
			return domain.ErrUserCanceled
		}

		err = bcrypt.CompareHashAndPassword(c.hash, []byte(input))
		if err == nil {
			return nil
		}
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("%w: verify passcode: %w", domain.ErrKeychain, err)
		}

		label = "Wrong passcode, try again"
	}

	return domain.ErrAuthFailed
}

// Hash returns the value to store under vault.passcode_hash.
func Hash(passcode string) (string, error) {
	if passcode == "" {
		return "", fmt.Errorf("%w: passcode is empty", domain.ErrInvalidConfig)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passcode: %w", err)
	}

	return string(hash), nil
}
