package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

const DefaultKeepAliveInterval = 60 * time.Second

type livenessRecord struct {
	lastActivity time.Time
	ticker       ports.Ticker
	stop         chan struct{}
}

// Liveness keeps per-session activity timestamps. A periodic tick refreshes
// the timestamp without sending anything to the remote side; nothing here
// disconnects idle sessions.
type Liveness struct {
	clock    ports.Clock
	interval time.Duration

	mu      sync.Mutex
	records map[string]*livenessRecord
}

func NewLiveness(clock ports.Clock, interval time.Duration) *Liveness {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultKeepAliveInterval
	}

	return &Liveness{
		clock:    clock,
		interval: interval,
		records:  make(map[string]*livenessRecord),
	}
}

func (l *Liveness) Interval() time.Duration {
	return l.interval
}

func (l *Liveness) Start(id string) {
	record := &livenessRecord{
		lastActivity: l.clock.Now(),
		ticker:       l.clock.NewTicker(l.interval),
		stop:         make(chan struct{}),
	}

	l.mu.Lock()
	if previous, ok := l.records[id]; ok {
		previous.ticker.Stop()
		close(previous.stop)
	}
	l.records[id] = record
	l.mu.Unlock()

	go l.tick(id, record)
}

func (l *Liveness) tick(id string, record *livenessRecord) {
	for {
		select {
		case <-record.stop:
			return
		case <-record.ticker.C():
			l.mu.Lock()
			if current, ok := l.records[id]; ok && current == record {
				current.lastActivity = l.clock.Now()
			}
			l.mu.Unlock()
		}
	}
}

func (l *Liveness) Touch(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record, ok := l.records[id]; ok {
		record.lastActivity = l.clock.Now()
	}
}

func (l *Liveness) Stop(id string) {
	l.mu.Lock()
	record, ok := l.records[id]
	delete(l.records, id)
	l.mu.Unlock()

	if !ok {
		return
	}

	record.ticker.Stop()
	close(record.stop)
}

func (l *Liveness) StopAll() {
	l.mu.Lock()
	ids := make([]string, 0, len(l.records))
	for id := range l.records {
		ids = append(ids, id)
	}
	l.mu.Unlock()

	for _, id := range ids {
		l.Stop(id)
	}
}

func (l *Liveness) IdleSeconds(id string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[id]
	if !ok {
		return 0, fmt.Errorf("idle time for %q: %w", id, domain.ErrSessionNotFound)
	}

	return l.clock.Now().Sub(record.lastActivity).Seconds(), nil
}
