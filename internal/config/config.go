// Package config loads yz settings from ~/.yzterm/config.toml and YZ_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".yzterm"
	envPrefix  = "YZ"
)

const (
	KeyHostsBackend          = "hosts.backend"
	KeyHostsPath             = "hosts.path"
	KeySecretsBackend        = "secrets.backend"
	KeySecretsDir            = "secrets.dir"
	KeySecretsPassPath       = "secrets.pass_path"
	KeySecretsPassDir        = "secrets.pass_dir"
	KeyVaultPresence         = "vault.presence"
	KeyVaultPasscodeHash     = "vault.passcode_hash"
	KeySSHPath               = "ssh.ssh_path"
	KeySCPPath               = "ssh.scp_path"
	KeySSHPassPath           = "ssh.sshpass_path"
	KeyStrictHostKeyChecking = "ssh.strict_host_key_checking"
	KeyKeepAliveInterval     = "session.keepalive_interval"
	KeyPollInterval          = "session.poll_interval"
	KeyBufferLimit           = "session.buffer_limit"
	KeyInitCommands          = "session.init_commands"
	KeyServeListen           = "serve.listen"
	KeyLogLevel              = "log.level"
)

const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"

	// SecretsChain tries pass first and falls back to the file store.
	SecretsChain = "chain"
	SecretsPass  = "pass"
	SecretsFile  = "file"

	// PresenceAuto uses the passcode prompt once a passcode hash is set.
	PresenceAuto     = "auto"
	PresencePasscode = "passcode"
	PresenceNone     = "none"
)

type Config struct {
	// Dir holds config.toml and the default data files.
	Dir     string
	Hosts   HostsConfig
	Secrets SecretsConfig
	Vault   VaultConfig
	SSH     SSHConfig
	Session SessionConfig
	Serve   ServeConfig
	Log     LogConfig
}

type HostsConfig struct {
	Backend string
	Path    string
}

type SecretsConfig struct {
	Backend string
	// Dir holds the encrypted file store and its age identity.
	Dir      string
	PassPath string
	// PassDir is exported as PASSWORD_STORE_DIR when set.
	PassDir string
}

type VaultConfig struct {
	Presence     string
	PasscodeHash string
}

type SSHConfig struct {
	SSHPath               string
	SCPPath               string
	SSHPassPath           string
	StrictHostKeyChecking string
}

type SessionConfig struct {
	KeepAliveInterval time.Duration
	PollInterval      time.Duration
	BufferLimit       int
	InitCommands      []string
}

type ServeConfig struct {
	Listen string
}

type LogConfig struct {
	Level string
}

// Loader binds a viper instance to a config directory. The same instance is
// used to persist changes made from the CLI.
type Loader struct {
	v   *viper.Viper
	dir string
}

// NewLoader uses ~/.yzterm when dir is empty.
func NewLoader(v *viper.Viper, dir string) (*Loader, error) {
	if v == nil {
		v = viper.New()
	}
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(homeDir, configDir)
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyHostsBackend, BackendTOML)
	v.SetDefault(KeyHostsPath, "")
	v.SetDefault(KeySecretsBackend, SecretsChain)
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeySecretsPassPath, "pass")
	v.SetDefault(KeySecretsPassDir, "")
	v.SetDefault(KeyVaultPresence, PresenceAuto)
	v.SetDefault(KeyVaultPasscodeHash, "")
	v.SetDefault(KeySSHPath, "ssh")
	v.SetDefault(KeySCPPath, "scp")
	v.SetDefault(KeySSHPassPath, "sshpass")
	v.SetDefault(KeyStrictHostKeyChecking, "no")
	v.SetDefault(KeyKeepAliveInterval, 60*time.Second)
	v.SetDefault(KeyPollInterval, 100*time.Millisecond)
	v.SetDefault(KeyBufferLimit, 0)
	v.SetDefault(KeyInitCommands, []string{"alias ls='ls --color=auto'"})
	v.SetDefault(KeyServeListen, "127.0.0.1:7681")
	v.SetDefault(KeyLogLevel, "info")

	return &Loader{v: v, dir: dir}, nil
}

func (l *Loader) Dir() string {
	return l.dir
}

func (l *Loader) Path() string {
	return filepath.Join(l.dir, configName+"."+configType)
}

func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Dir: l.dir,
		Hosts: HostsConfig{
			Backend: strings.ToLower(l.v.GetString(KeyHostsBackend)),
			Path:    l.v.GetString(KeyHostsPath),
		},
		Secrets: SecretsConfig{
			Backend:  strings.ToLower(l.v.GetString(KeySecretsBackend)),
			Dir:      l.v.GetString(KeySecretsDir),
			PassPath: l.v.GetString(KeySecretsPassPath),
			PassDir:  l.v.GetString(KeySecretsPassDir),
		},
		Vault: VaultConfig{
			Presence:     strings.ToLower(l.v.GetString(KeyVaultPresence)),
			PasscodeHash: l.v.GetString(KeyVaultPasscodeHash),
		},
		SSH: SSHConfig{
			SSHPath:               l.v.GetString(KeySSHPath),
			SCPPath:               l.v.GetString(KeySCPPath),
			SSHPassPath:           l.v.GetString(KeySSHPassPath),
			StrictHostKeyChecking: l.v.GetString(KeyStrictHostKeyChecking),
		},
		Session: SessionConfig{
			KeepAliveInterval: l.v.GetDuration(KeyKeepAliveInterval),
			PollInterval:      l.v.GetDuration(KeyPollInterval),
			BufferLimit:       l.v.GetInt(KeyBufferLimit),
			InitCommands:      l.v.GetStringSlice(KeyInitCommands),
		},
		Serve: ServeConfig{Listen: l.v.GetString(KeyServeListen)},
		Log:   LogConfig{Level: l.v.GetString(KeyLogLevel)},
	}

	if cfg.Hosts.Path == "" {
		cfg.Hosts.Path = defaultHostsPath(l.dir, cfg.Hosts.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Set stores value under key and rewrites config.toml. Only values already
// in the file are kept; defaults and environment overrides are not written.
func (l *Loader) Set(key string, value any) error {
	if err := os.MkdirAll(l.dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	file := viper.New()
	file.SetConfigFile(l.Path())
	file.SetConfigType(configType)
	if err := file.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(l.Path()); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.Chmod(l.Path(), 0o600); err != nil {
		return fmt.Errorf("chmod config file: %w", err)
	}

	l.v.Set(key, value)
	return nil
}

func defaultHostsPath(dir, backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(dir, "hosts.db")
	}

	return filepath.Join(dir, "hosts.toml")
}

func (c Config) Validate() error {
	switch c.Hosts.Backend {
	case BackendTOML, BackendSQLite:
	default:
		return fmt.Errorf("%w: %s must be %q or %q, got %q", domain.ErrInvalidConfig, KeyHostsBackend, BackendTOML, BackendSQLite, c.Hosts.Backend)
	}

	switch c.Secrets.Backend {
	case SecretsChain, SecretsPass, SecretsFile:
	default:
		return fmt.Errorf("%w: %s must be chain, pass or file, got %q", domain.ErrInvalidConfig, KeySecretsBackend, c.Secrets.Backend)
	}

	switch c.Vault.Presence {
	case PresenceAuto, PresencePasscode, PresenceNone:
	default:
		return fmt.Errorf("%w: %s must be auto, passcode or none, got %q", domain.ErrInvalidConfig, KeyVaultPresence, c.Vault.Presence)
	}

	if c.Session.KeepAliveInterval < 0 || c.Session.PollInterval < 0 {
		return fmt.Errorf("%w: session intervals must not be negative", domain.ErrInvalidConfig)
	}
	if c.Session.BufferLimit < 0 {
		return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidConfig, KeyBufferLimit)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// UsePasscode reports whether saved passwords sit behind the passcode
// prompt.
func (c Config) UsePasscode() bool {
	switch c.Vault.Presence {
	case PresencePasscode:
		return true
	case PresenceAuto:
		return c.Vault.PasscodeHash != ""
	default:
		return false
	}
}

func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, raw)
	}

	return level, nil
}
