// Package pass keeps host passwords in the user's password-store
// (https://www.passwordstore.org) by shelling out to the pass CLI.
package pass

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

// ErrUnavailable means the pass binary could not be started.
var ErrUnavailable = errors.New("pass command unavailable")

const (
	DefaultPath = "pass"

	notInStoreMarker = "is not in the password store"
	storeDirEnv      = "PASSWORD_STORE_DIR"
)

type Config struct {
	// Path defaults to pass on $PATH.
	Path string
	// Dir overrides the password-store location when set.
	Dir string
}

type Store struct {
	runner ports.CommandRunner
	cfg    Config
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(runner ports.CommandRunner, cfg Config) *Store {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}

	return &Store{runner: runner, cfg: cfg}
}

// Put stores value as a single-line entry, replacing any existing one.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: %w: secret spans lines", key, domain.ErrInvalidConfig)
	}

	_, err := s.pass(ctx, "put", key, value+"\n", "insert", "-m", "-f", key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	stdout, err := s.pass(ctx, "get", key, "", "show", key)
	if err != nil {
		return "", err
	}

	// Multi-line entries keep the password on the first line.
	password, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(password, "\r"), nil
}

// Delete succeeds when the entry does not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.pass(ctx, "delete", key, "", "rm", "-f", key)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}

	return err
}

func (s *Store) pass(ctx context.Context, op, key, stdin string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	inv := ports.Invocation{Path: s.cfg.Path, Args: args, Stdin: stdin}
	if s.cfg.Dir != "" {
		inv.Env = []string{storeDirEnv + "=" + s.cfg.Dir}
	}

	result, err := s.runner.Run(ctx, inv)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("pass %s %q: %w", op, key, ErrUnavailable)
		}
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	}

	if result.ExitCode != 0 {
		stderr := strings.TrimSpace(result.Stderr)
		if strings.Contains(stderr, notInStoreMarker) {
			return "", fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
		}
		if stderr == "" {
			stderr = fmt.Sprintf("exit status %d", result.ExitCode)
		}
		return "", fmt.Errorf("pass %s %q: %s", op, key, stderr)
	}

	return result.Stdout, nil
}
