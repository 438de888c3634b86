package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

const (
	knownHostsNotice       = "Warning: Permanently added"
	defaultListFailMessage = "failed to list directory"
)

// DirectoryService lists remote directories over one-shot connections.
type DirectoryService struct {
	remote ports.RemoteCommands
	runner ports.CommandRunner
	logger *slog.Logger
}

func NewDirectoryService(remote ports.RemoteCommands, runner ports.CommandRunner, logger *slog.Logger) *DirectoryService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &DirectoryService{remote: remote, runner: runner, logger: logger}
}

func (s *DirectoryService) List(ctx context.Context, target domain.Target, secret, path string) ([]domain.FileEntry, error) {
	if path == "" {
		path = domain.HomePath
	}

	inv, err := s.remote.Exec(target, secret, domain.ListingCommand(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrListError, err)
	}

	result, err := s.runner.Run(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrListError, err)
	}

	if result.ExitCode != 0 {
		message := filterStderr(result.Stderr)
		if message == "" {
			message = defaultListFailMessage
		}
		s.logger.Debug("directory listing failed", "target", target.String(), "path", path, "exit_code", result.ExitCode)
		return nil, fmt.Errorf("%w: %s", domain.ErrListFailed, message)
	}

	return domain.ParseListing(result.Stdout), nil
}

// filterStderr drops the host key notices ssh prints when known hosts are
// discarded.
func filterStderr(stderr string) string {
	lines := strings.Split(stderr, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, knownHostsNotice) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
