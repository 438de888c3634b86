package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/yzterm/internal/adapters/presence/none"
	"github.com/bnema/yzterm/internal/adapters/presence/passcode"
	hostsrender "github.com/bnema/yzterm/internal/adapters/render/hosts"
	"github.com/bnema/yzterm/internal/adapters/remote/execrunner"
	"github.com/bnema/yzterm/internal/adapters/remote/openssh"
	sqliterepo "github.com/bnema/yzterm/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/yzterm/internal/adapters/repo/toml"
	chainstore "github.com/bnema/yzterm/internal/adapters/secrets/chain"
	filestore "github.com/bnema/yzterm/internal/adapters/secrets/file"
	passstore "github.com/bnema/yzterm/internal/adapters/secrets/pass"
	"github.com/bnema/yzterm/internal/application"
	"github.com/bnema/yzterm/internal/config"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/bnema/yzterm/internal/session"
	"github.com/spf13/viper"
)

type app struct {
	cfg      config.Config
	loader   *config.Loader
	logger   *slog.Logger
	logLevel *slog.LevelVar

	hostRepo    ports.HostRepository
	vault       *application.Vault
	hosts       *application.HostService
	remote      *openssh.Builder
	directories *application.DirectoryService
	transfers   *application.TransferService

	hostsRenderer func([]domain.Host) (string, error)
	prompt        passcode.Prompter
}

func wireApp(logOutput io.Writer) (*app, error) {
	loader, err := config.NewLoader(viper.New(), "")
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := config.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logLevel := &slog.LevelVar{}
	logLevel.Set(level)
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: logLevel}))

	hostRepo, err := openHostRepository(cfg.Hosts)
	if err != nil {
		return nil, fmt.Errorf("wire host repository: %w", err)
	}

	runner := execrunner.New()

	secretStore, err := openSecretStore(cfg.Secrets, runner, logger)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	var presence ports.PresenceChecker = none.Checker{}
	if cfg.UsePasscode() {
		presence = passcode.NewTTY(cfg.Vault.PasscodeHash)
	}

	vault := application.NewVault(secretStore, presence, logger)
	remote := openssh.NewBuilder(openssh.Config{
		SSHPath:               cfg.SSH.SSHPath,
		SCPPath:               cfg.SSH.SCPPath,
		SSHPassPath:           cfg.SSH.SSHPassPath,
		StrictHostKeyChecking: cfg.SSH.StrictHostKeyChecking,
		KeepAliveInterval:     cfg.Session.KeepAliveInterval,
	})

	return &app{
		cfg:           cfg,
		loader:        loader,
		logger:        logger,
		logLevel:      logLevel,
		hostRepo:      hostRepo,
		vault:         vault,
		hosts:         application.NewHostService(hostRepo, vault, logger),
		remote:        remote,
		directories:   application.NewDirectoryService(remote, runner, logger),
		transfers:     application.NewTransferService(remote, runner, logger),
		hostsRenderer: hostsrender.Render,
		prompt:        passcode.TTYPrompter,
	}, nil
}

func openHostRepository(cfg config.HostsConfig) (ports.HostRepository, error) {
	if cfg.Backend == config.BackendSQLite {
		return sqliterepo.Open(cfg.Path)
	}

	return tomlrepo.NewRepository(cfg.Path)
}

func openSecretStore(cfg config.SecretsConfig, runner ports.CommandRunner, logger *slog.Logger) (ports.SecretStore, error) {
	pass := passstore.Config{Path: cfg.PassPath, Dir: cfg.PassDir}

	switch cfg.Backend {
	case config.SecretsPass:
		return passstore.NewStore(runner, pass), nil
	case config.SecretsFile:
		return filestore.NewStore(cfg.Dir), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(runner, pass, cfg.Dir, logger)
	}
}

// newSessionManager binds PTY sessions to the ssh client.
func (a *app) newSessionManager(cols, rows uint16) *session.Manager {
	return session.NewManager(a.remote.Shell, session.Config{
		Cols:              cols,
		Rows:              rows,
		BufferLimit:       a.cfg.Session.BufferLimit,
		KeepAliveInterval: a.cfg.Session.KeepAliveInterval,
		Logger:            a.logger,
	})
}

func (a *app) controllerConfig() application.ControllerConfig {
	cfg := application.DefaultControllerConfig()
	if a.cfg.Session.PollInterval > 0 {
		cfg.PollInterval = a.cfg.Session.PollInterval
	}
	cfg.InitCommands = a.cfg.Session.InitCommands
	cfg.Logger = a.logger

	return cfg
}

func (a *app) close() {
	if closer, ok := a.hostRepo.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Debug("close host repository", "error", err)
		}
	}
}
