package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()

	loader, err := NewLoader(viper.New(), t.TempDir())
	require.NoError(t, err)

	return loader
}

func TestLoadDefaults(t *testing.T) {
	loader := newTestLoader(t)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, BackendTOML, cfg.Hosts.Backend)
	assert.Equal(t, filepath.Join(loader.Dir(), "hosts.toml"), cfg.Hosts.Path)
	assert.Equal(t, SecretsChain, cfg.Secrets.Backend)
	assert.Equal(t, filepath.Join(loader.Dir(), "secrets"), cfg.Secrets.Dir)
	assert.Equal(t, PresenceAuto, cfg.Vault.Presence)
	assert.Equal(t, "ssh", cfg.SSH.SSHPath)
	assert.Equal(t, "scp", cfg.SSH.SCPPath)
	assert.Equal(t, "sshpass", cfg.SSH.SSHPassPath)
	assert.Equal(t, "no", cfg.SSH.StrictHostKeyChecking)
	assert.Equal(t, 60*time.Second, cfg.Session.KeepAliveInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.PollInterval)
	assert.Equal(t, []string{"alias ls='ls --color=auto'"}, cfg.Session.InitCommands)
	assert.Equal(t, "127.0.0.1:7681", cfg.Serve.Listen)
	assert.False(t, cfg.UsePasscode())
}

func TestLoadReadsConfigFile(t *testing.T) {
	loader := newTestLoader(t)
	require.NoError(t, os.WriteFile(loader.Path(), []byte(`
[hosts]
backend = "sqlite"

[ssh]
strict_host_key_checking = "accept-new"

[session]
poll_interval = "50ms"
init_commands = []

[log]
level = "debug"
`), 0o600))

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Hosts.Backend)
	assert.Equal(t, filepath.Join(loader.Dir(), "hosts.db"), cfg.Hosts.Path)
	assert.Equal(t, "accept-new", cfg.SSH.StrictHostKeyChecking)
	assert.Equal(t, 50*time.Millisecond, cfg.Session.PollInterval)
	assert.Empty(t, cfg.Session.InitCommands)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("YZ_HOSTS_PATH", "/srv/yz/hosts.toml")
	t.Setenv("YZ_SERVE_LISTEN", ":9000")
	t.Setenv("YZ_LOG_LEVEL", "warn")
	t.Setenv("YZ_SECRETS_BACKEND", "FILE")

	cfg, err := newTestLoader(t).Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/yz/hosts.toml", cfg.Hosts.Path)
	assert.Equal(t, ":9000", cfg.Serve.Listen)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, SecretsFile, cfg.Secrets.Backend)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		env  string
	}{
		{name: "backend", key: "YZ_HOSTS_BACKEND", env: "postgres"},
		{name: "presence", key: "YZ_VAULT_PRESENCE", env: "fingerprint"},
		{name: "secrets backend", key: "YZ_SECRETS_BACKEND", env: "keyring"},
		{name: "log level", key: "YZ_LOG_LEVEL", env: "loud"},
		{name: "poll interval", key: "YZ_SESSION_POLL_INTERVAL", env: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.env)

			_, err := newTestLoader(t).Load()
			require.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoadMalformedConfigFile(t *testing.T) {
	loader := newTestLoader(t)
	require.NoError(t, os.WriteFile(loader.Path(), []byte("[hosts"), 0o600))

	_, err := loader.Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestSetPersistsValue(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	loader, err := NewLoader(viper.New(), dir)
	require.NoError(t, err)

	require.NoError(t, loader.Set(KeyVaultPasscodeHash, "$2a$10$abc"))

	info, err := os.Stat(loader.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := NewLoader(viper.New(), dir)
	require.NoError(t, err)
	cfg, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$abc", cfg.Vault.PasscodeHash)
	assert.True(t, cfg.UsePasscode())
}

func TestUsePasscode(t *testing.T) {
	assert.True(t, Config{Vault: VaultConfig{Presence: PresencePasscode}}.UsePasscode())
	assert.False(t, Config{Vault: VaultConfig{Presence: PresenceNone, PasscodeHash: "x"}}.UsePasscode())
	assert.True(t, Config{Vault: VaultConfig{Presence: PresenceAuto, PasscodeHash: "x"}}.UsePasscode())
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestSetKeepsExistingValuesAndSkipsDefaults(t *testing.T) {
	loader := newTestLoader(t)
	require.NoError(t, os.WriteFile(loader.Path(), []byte("[hosts]\nbackend = \"sqlite\"\n"), 0o600))

	require.NoError(t, loader.Set(KeyVaultPresence, PresencePasscode))

	data, err := os.ReadFile(loader.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "sqlite")
	assert.Contains(t, string(data), "passcode")
	assert.NotContains(t, string(data), "sshpass")
}
