package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

// SecretKey is the vault entry for a host's password.
func SecretKey(id domain.HostID) string {
	return fmt.Sprintf("yzterm/hosts/%s/password", id)
}

// Vault stores host passwords and releases them only after the presence
// checker is satisfied. Secret values are never logged.
type Vault struct {
	store    ports.SecretStore
	presence ports.PresenceChecker
	logger   *slog.Logger
}

func NewVault(store ports.SecretStore, presence ports.PresenceChecker, logger *slog.Logger) *Vault {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Vault{store: store, presence: presence, logger: logger}
}

// Save replaces any secret previously stored for id.
func (v *Vault) Save(ctx context.Context, id domain.HostID, secret string) error {
	key := SecretKey(id)

	if err := v.store.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("%w: remove previous secret: %w", domain.ErrKeychain, err)
	}
	if err := v.store.Put(ctx, key, secret); err != nil {
		return fmt.Errorf("%w: store secret: %w", domain.ErrKeychain, err)
	}

	v.logger.Debug("secret saved", "key", key)
	return nil
}

// Fetch returns the secret for id. A missing secret is not an error and does
// not trigger the presence challenge.
func (v *Vault) Fetch(ctx context.Context, id domain.HostID) (string, bool, error) {
	key := SecretKey(id)

	secret, err := v.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: read secret: %w", domain.ErrKeychain, err)
	}

	if err := v.presence.Challenge(ctx, fmt.Sprintf("Unlock password for %s", id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserCanceled),
			errors.Is(err, domain.ErrAuthFailed),
			errors.Is(err, domain.ErrKeychain),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return "", false, err
		default:
			return "", false, fmt.Errorf("%w: presence check: %w", domain.ErrKeychain, err)
		}
	}

	v.logger.Debug("secret released", "key", key)
	return secret, true, nil
}

// Delete succeeds when nothing is stored.
func (v *Vault) Delete(ctx context.Context, id domain.HostID) error {
	key := SecretKey(id)

	if err := v.store.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("%w: delete secret: %w", domain.ErrKeychain, err)
	}

	return nil
}
