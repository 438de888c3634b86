package ports

import (
	"context"

	"github.com/bnema/yzterm/internal/domain"
)

type HostRepository interface {
	GetByID(ctx context.Context, id domain.HostID) (domain.Host, error)
	List(ctx context.Context) ([]domain.Host, error)
	Save(ctx context.Context, host domain.Host) error
	Delete(ctx context.Context, id domain.HostID) error
}
