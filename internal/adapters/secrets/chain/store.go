// Package chain layers several secret backends behind one ports.SecretStore.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	filestore "github.com/bnema/yzterm/internal/adapters/secrets/file"
	passstore "github.com/bnema/yzterm/internal/adapters/secrets/pass"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

var errNoBackends = errors.New("secret chain has no backends")

type Backend struct {
	Name  string
	Store ports.SecretStore
}

// Store writes to the first backend that accepts a secret and reads from
// the first that has it. Deletes reach every backend so a copy left in a
// later backend cannot resurface.
type Store struct {
	backends []Backend
	logger   *slog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

func New(logger *slog.Logger, backends ...Backend) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend.Store == nil {
			return nil, fmt.Errorf("secret backend %d (%s) is nil", i, backend.Name)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store{backends: backends, logger: logger}, nil
}

// NewPassFirstWithFileFallback prefers the password-store and falls back to
// the age-encrypted file store under fileRoot.
func NewPassFirstWithFileFallback(runner ports.CommandRunner, pass passstore.Config, fileRoot string, logger *slog.Logger) (*Store, error) {
	return New(logger,
		Backend{Name: "pass", Store: passstore.NewStore(runner, pass)},
		Backend{Name: "file", Store: filestore.NewStore(fileRoot)},
	)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextError(err) {
			return err
		}
		s.logger.Debug("secret backend rejected put", "backend", backend.Name, "key", key, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", backend.Name, err))
	}

	return fmt.Errorf("put %q: %w", key, errors.Join(errs...))
}

// Get returns domain.ErrSecretNotFound when no backend holds key and none
// failed for another reason.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for _, backend := range s.backends {
		value, err := backend.Store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextError(err) {
			return "", err
		}
		if isAbsent(err) {
			continue
		}
		s.logger.Debug("secret backend failed get", "backend", backend.Name, "key", key, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", backend.Name, err))
	}

	if len(errs) == 0 {
		return "", fmt.Errorf("get %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("get %q: %w", key, errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Store.Delete(ctx, key)
		if err == nil || isAbsent(err) {
			continue
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s: %w", backend.Name, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("delete %q: %w", key, errors.Join(errs...))
	}

	return nil
}

// isAbsent covers a missing entry and a backend that is not installed.
func isAbsent(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, passstore.ErrUnavailable)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
