package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/google/uuid"
)

type HostService struct {
	repo   ports.HostRepository
	vault  *Vault
	newID  func() domain.HostID
	logger *slog.Logger
}

func NewHostService(repo ports.HostRepository, vault *Vault, logger *slog.Logger) *HostService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &HostService{
		repo:   repo,
		vault:  vault,
		newID:  newHostID,
		logger: logger,
	}
}

func newHostID() domain.HostID {
	return domain.HostID(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

func (s *HostService) Add(ctx context.Context, in HostInput) (domain.Host, error) {
	id := domain.HostID(strings.TrimSpace(string(in.ID)))
	if id == "" {
		id = s.newID()
	}

	if _, err := s.repo.GetByID(ctx, id); err == nil {
		return domain.Host{}, fmt.Errorf("%w: host %q already exists", domain.ErrInvalidConfig, id)
	} else if !errors.Is(err, domain.ErrHostNotFound) {
		return domain.Host{}, fmt.Errorf("get host by id: %w", err)
	}

	host := domain.Host{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Address:  strings.TrimSpace(in.Address),
		Port:     in.Port,
		Username: strings.TrimSpace(in.Username),
	}
	if host.Port == 0 {
		host.Port = domain.DefaultSSHPort
	}
	if in.Password != "" {
		host.SecretRef = SecretKey(id)
	}
	if err := host.Validate(); err != nil {
		return domain.Host{}, err
	}

	if err := s.save(ctx, host, in.Password); err != nil {
		return domain.Host{}, err
	}

	s.logger.Info("host added", "host", id)
	return host, nil
}

func (s *HostService) Edit(ctx context.Context, id domain.HostID, update HostUpdate) (domain.Host, error) {
	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Host{}, fmt.Errorf("get host by id: %w", err)
	}
	original := host

	if update.Name != nil {
		host.Name = strings.TrimSpace(*update.Name)
	}
	if update.Address != nil {
		host.Address = strings.TrimSpace(*update.Address)
	}
	if update.Port != nil {
		host.Port = *update.Port
	}
	if update.Username != nil {
		host.Username = strings.TrimSpace(*update.Username)
	}
	if update.Password != "" {
		host.SecretRef = SecretKey(id)
	}
	if update.ClearPassword && update.Password == "" {
		host.SecretRef = ""
	}
	if err := host.Validate(); err != nil {
		return domain.Host{}, err
	}

	if update.ClearPassword && update.Password == "" {
		if err := s.repo.Save(ctx, host); err != nil {
			return domain.Host{}, fmt.Errorf("save host: %w", err)
		}
		if err := s.vault.Delete(ctx, id); err != nil {
			if restoreErr := s.repo.Save(ctx, original); restoreErr != nil {
				return domain.Host{}, fmt.Errorf("delete host secret and restore host: %w", errors.Join(err, restoreErr))
			}
			return domain.Host{}, fmt.Errorf("delete host secret: %w", err)
		}
		return host, nil
	}

	if err := s.save(ctx, host, update.Password); err != nil {
		return domain.Host{}, err
	}

	return host, nil
}

// save stores the password first so a saved profile never points at a
// missing secret.
func (s *HostService) save(ctx context.Context, host domain.Host, password string) error {
	if password != "" {
		if err := s.vault.Save(ctx, host.ID, password); err != nil {
			return fmt.Errorf("store host secret: %w", err)
		}
	}

	if err := s.repo.Save(ctx, host); err != nil {
		if password == "" {
			return fmt.Errorf("save host: %w", err)
		}
		if rollbackErr := s.vault.Delete(ctx, host.ID); rollbackErr != nil {
			return fmt.Errorf("save host and rollback stored secret: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save host: %w", err)
	}

	return nil
}

func (s *HostService) Get(ctx context.Context, id domain.HostID) (domain.Host, error) {
	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Host{}, fmt.Errorf("get host by id: %w", err)
	}

	return host, nil
}

func (s *HostService) List(ctx context.Context) ([]domain.Host, error) {
	hosts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}

	return hosts, nil
}

// Remove deletes the stored password before the profile.
func (s *HostService) Remove(ctx context.Context, id domain.HostID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get host by id: %w", err)
	}

	if err := s.vault.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete host secret: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete host: %w", err)
	}

	s.logger.Info("host removed", "host", id)
	return nil
}

// Credentials loads a host and, when one is stored, its password. Presence
// errors are returned as is.
func (s *HostService) Credentials(ctx context.Context, id domain.HostID) (domain.Host, string, error) {
	host, err := s.Get(ctx, id)
	if err != nil {
		return domain.Host{}, "", err
	}

	secret, _, err := s.vault.Fetch(ctx, id)
	if err != nil {
		return domain.Host{}, "", err
	}

	return host, secret, nil
}
