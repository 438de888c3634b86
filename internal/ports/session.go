package ports

import (
	"context"

	"github.com/bnema/yzterm/internal/domain"
)

type SessionID = string

type SessionManager interface {
	Open(ctx context.Context, target domain.Target, secret string) (SessionID, error)
	Write(id SessionID, data []byte) error
	Resize(id SessionID, cols, rows uint16) error
	Drain(id SessionID) (string, error)
	Done(id SessionID) <-chan struct{}
	Close(id SessionID) error
	CloseAll()
}

// OutputNotifier is implemented by session managers that can signal new
// output between poll ticks.
type OutputNotifier interface {
	Notify(id SessionID) (<-chan struct{}, error)
}

// Renderer is the terminal emulator boundary.
type Renderer interface {
	Output(text string)
	Clear()
}

type Alerter interface {
	Alert(title, message string)
}

// ListingObserver receives the file browser contents after each listing.
type ListingObserver interface {
	Listing(path string, files []domain.FileEntry)
}
