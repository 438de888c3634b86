package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/yzterm/internal/adapters/presence/none"
	filestore "github.com/bnema/yzterm/internal/adapters/secrets/file"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const webKey = "yzterm/hosts/web-1/password"

func TestSecretKeyLayout(t *testing.T) {
	assert.Equal(t, webKey, SecretKey("web-1"))
}

func TestVaultSaveReplacesPreviousSecret(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	presence := mocks.NewMockPresenceChecker(t)
	vault := NewVault(store, presence, nil)

	mock.InOrder(
		store.EXPECT().Delete(mockAnyContext(), webKey).Return(nil).Call,
		store.EXPECT().Put(mockAnyContext(), webKey, "new-secret").Return(nil).Call,
	)

	require.NoError(t, vault.Save(context.Background(), "web-1", "new-secret"))
}

func TestVaultSaveToleratesMissingPreviousSecret(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	vault := NewVault(store, mocks.NewMockPresenceChecker(t), nil)

	store.EXPECT().Delete(mockAnyContext(), webKey).Return(fmt.Errorf("pass delete: %w", domain.ErrSecretNotFound))
	store.EXPECT().Put(mockAnyContext(), webKey, "s").Return(nil)

	require.NoError(t, vault.Save(context.Background(), "web-1", "s"))
}

func TestVaultSaveBackendFailureIsKeychainError(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	vault := NewVault(store, mocks.NewMockPresenceChecker(t), nil)

	store.EXPECT().Delete(mockAnyContext(), webKey).Return(nil)
	store.EXPECT().Put(mockAnyContext(), webKey, "s").Return(errors.New("disk full"))

	err := vault.Save(context.Background(), "web-1", "s")
	require.ErrorIs(t, err, domain.ErrKeychain)
	assert.ErrorContains(t, err, "disk full")
}

func TestVaultFetchAbsentSkipsPresenceChallenge(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	presence := mocks.NewMockPresenceChecker(t)
	vault := NewVault(store, presence, nil)

	store.EXPECT().Get(mockAnyContext(), webKey).Return("", fmt.Errorf("file secret: %w", domain.ErrSecretNotFound))

	secret, found, err := vault.Fetch(context.Background(), "web-1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, secret)
	presence.AssertNotCalled(t, "Challenge", mock.Anything, mock.Anything)
}

func TestVaultFetchReleasesSecretAfterChallenge(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	presence := mocks.NewMockPresenceChecker(t)
	vault := NewVault(store, presence, nil)

	store.EXPECT().Get(mockAnyContext(), webKey).Return("hunter2", nil)
	presence.EXPECT().Challenge(mockAnyContext(), mock.AnythingOfType("string")).Return(nil).Once()

	secret, found, err := vault.Fetch(context.Background(), "web-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hunter2", secret)
}

func TestVaultFetchPropagatesPresenceOutcome(t *testing.T) {
	tests := []struct {
		name      string
		challenge error
		want      error
	}{
		{name: "canceled", challenge: domain.ErrUserCanceled, want: domain.ErrUserCanceled},
		{name: "failed", challenge: domain.ErrAuthFailed, want: domain.ErrAuthFailed},
		{name: "unexpected", challenge: errors.New("tty gone"), want: domain.ErrKeychain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockSecretStore(t)
			presence := mocks.NewMockPresenceChecker(t)
			vault := NewVault(store, presence, nil)

			store.EXPECT().Get(mockAnyContext(), webKey).Return("hunter2", nil)
			presence.EXPECT().Challenge(mockAnyContext(), mock.Anything).Return(tt.challenge)

			secret, found, err := vault.Fetch(context.Background(), "web-1")
			require.ErrorIs(t, err, tt.want)
			assert.False(t, found)
			assert.Empty(t, secret)
		})
	}
}

func TestVaultFetchBackendFailureIsKeychainError(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	vault := NewVault(store, mocks.NewMockPresenceChecker(t), nil)

	store.EXPECT().Get(mockAnyContext(), webKey).Return("", errors.New("gpg: decryption failed"))

	_, _, err := vault.Fetch(context.Background(), "web-1")
	require.ErrorIs(t, err, domain.ErrKeychain)
}

func TestVaultDeleteOfNeverSavedSecretSucceeds(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	vault := NewVault(store, mocks.NewMockPresenceChecker(t), nil)

	store.EXPECT().Delete(mockAnyContext(), webKey).Return(fmt.Errorf("primary: %w", domain.ErrSecretNotFound)).Once()
	store.EXPECT().Delete(mockAnyContext(), "yzterm/hosts/web-2/password").Return(errors.New("permission denied")).Once()

	require.NoError(t, vault.Delete(context.Background(), "web-1"))
	require.ErrorIs(t, vault.Delete(context.Background(), "web-2"), domain.ErrKeychain)
}

func TestVaultRoundTripWithEncryptedFileStore(t *testing.T) {
	t.Parallel()

	vault := NewVault(filestore.NewStore(t.TempDir()), none.Checker{}, nil)
	ctx := context.Background()

	require.NoError(t, vault.Delete(ctx, "web-1"))

	require.NoError(t, vault.Save(ctx, "web-1", "first"))
	require.NoError(t, vault.Save(ctx, "web-1", "second"))

	secret, found, err := vault.Fetch(ctx, "web-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", secret)

	require.NoError(t, vault.Delete(ctx, "web-1"))
	_, found, err = vault.Fetch(ctx, "web-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
