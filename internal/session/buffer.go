package session

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// DefaultBufferLimit bounds how much undrained output a session may hold.
const DefaultBufferLimit = 4 * 1024 * 1024

// OutputBuffer accumulates decoded terminal output until the consumer drains
// it. Append and Drain are serialized per buffer.
type OutputBuffer struct {
	mu     sync.Mutex
	data   strings.Builder
	limit  int
	notify chan struct{}
}

func NewOutputBuffer(limit int) *OutputBuffer {
	if limit <= 0 {
		limit = DefaultBufferLimit
	}

	return &OutputBuffer{
		limit:  limit,
		notify: make(chan struct{}, 1),
	}
}

func (b *OutputBuffer) Append(text string) {
	if text == "" {
		return
	}

	b.mu.Lock()
	b.data.WriteString(text)
	if b.data.Len() > b.limit {
		// Trim to three quarters of the limit so the copy is paid once per
		// quarter limit of new output, not on every append.
		kept := b.data.String()
		start := len(kept) - b.limit*3/4
		for start < len(kept) && !utf8.RuneStart(kept[start]) {
			start++
		}
		kept = kept[start:]
		b.data.Reset()
		b.data.WriteString(kept)
	}
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Drain returns everything appended since the previous Drain and empties
// the buffer.
func (b *OutputBuffer) Drain() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.data.String()
	b.data.Reset()
	return out
}

func (b *OutputBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data.Len()
}

// Notify is signalled after appends. Consumers select on it and then Drain.
func (b *OutputBuffer) Notify() <-chan struct{} {
	return b.notify
}
