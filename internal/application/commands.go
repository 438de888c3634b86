package application

import "github.com/bnema/yzterm/internal/domain"

// HostInput describes a new host. Password is optional.
type HostInput struct {
	ID       domain.HostID
	Name     string
	Address  string
	Port     int
	Username string
	Password string
}

// HostUpdate changes only the fields that are set. An empty Password keeps
// the stored one; ClearPassword removes it.
type HostUpdate struct {
	Name          *string
	Address       *string
	Port          *int
	Username      *string
	Password      string
	ClearPassword bool
}
