package application

import (
	"time"

	"github.com/bnema/yzterm/internal/domain"
)

type ConnState string

const (
	StateIdle       ConnState = "idle"
	StateConnecting ConnState = "connecting"
	StateConnected  ConnState = "connected"
)

type TransferProgress struct {
	Direction TransferDirection
	FileName  string
	StartedAt time.Time
}

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	State      ConnState
	Host       *domain.Host
	SessionID  string
	CurrentDir string
	Files      []domain.FileEntry
	Transfer   *TransferProgress
	Generation uint64
}
