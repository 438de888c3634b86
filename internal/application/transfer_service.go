package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

type TransferDirection string

const (
	TransferUpload   TransferDirection = "upload"
	TransferDownload TransferDirection = "download"
)

// TransferService copies single files with scp. Calls block until the copy
// finishes.
type TransferService struct {
	remote ports.RemoteCommands
	runner ports.CommandRunner
	logger *slog.Logger
}

func NewTransferService(remote ports.RemoteCommands, runner ports.CommandRunner, logger *slog.Logger) *TransferService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &TransferService{remote: remote, runner: runner, logger: logger}
}

func (s *TransferService) Upload(ctx context.Context, target domain.Target, secret, localPath, remotePath string) error {
	inv, err := s.remote.Upload(target, secret, localPath, remotePath)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransferError, err)
	}

	return s.run(ctx, TransferUpload, inv)
}

func (s *TransferService) Download(ctx context.Context, target domain.Target, secret, remotePath, localPath string) error {
	inv, err := s.remote.Download(target, secret, remotePath, localPath)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransferError, err)
	}

	return s.run(ctx, TransferDownload, inv)
}

func (s *TransferService) run(ctx context.Context, direction TransferDirection, inv ports.Invocation) error {
	result, err := s.runner.Run(ctx, inv)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransferError, err)
	}

	if result.ExitCode != 0 {
		message := strings.TrimSpace(result.Stderr)
		if message == "" {
			message = string(direction) + " failed"
		}
		s.logger.Info("transfer failed", "direction", direction, "exit_code", result.ExitCode)
		return fmt.Errorf("%w: %s", domain.ErrTransferFailed, message)
	}

	s.logger.Debug("transfer finished", "direction", direction)
	return nil
}
