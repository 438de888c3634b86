// Package clocktest provides a manually driven ports.Clock for tests.
package clocktest

import (
	"sync"
	"time"

	"github.com/bnema/yzterm/internal/ports"
)

type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*Ticker
	timers  []*timer
	changed *sync.Cond
}

type timer struct {
	deadline time.Time
	ch       chan time.Time
}

var _ ports.Clock = (*Fake)(nil)

func NewFake(start time.Time) *Fake {
	f := &Fake{now: start}
	f.changed = sync.NewCond(&f.mu)
	return f
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward and fires every After whose deadline has
// been reached. Tickers only fire through Tick.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now

	var expired, pending []*timer
	for _, t := range f.timers {
		if t.deadline.After(now) {
			pending = append(pending, t)
			continue
		}
		expired = append(expired, t)
	}
	f.timers = pending
	f.mu.Unlock()

	for _, t := range expired {
		t.ch <- now
	}
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- f.now
		return ch
	}

	f.timers = append(f.timers, &timer{deadline: f.now.Add(d), ch: ch})
	f.changed.Broadcast()
	return ch
}

// WaitForTimers blocks until at least n After calls are pending, so a test
// can advance the clock without racing the goroutine that registers them.
func (f *Fake) WaitForTimers(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.timers) < n {
		f.changed.Wait()
	}
}

func (f *Fake) NewTicker(d time.Duration) ports.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()

	ticker := &Ticker{Interval: d, ch: make(chan time.Time, 1)}
	f.tickers = append(f.tickers, ticker)
	return ticker
}

// Tick fires every live ticker once. A ticker whose previous tick has not
// been consumed drops the new one, as time.Ticker does.
func (f *Fake) Tick() {
	f.mu.Lock()
	now := f.now
	tickers := append([]*Ticker(nil), f.tickers...)
	f.mu.Unlock()

	for _, ticker := range tickers {
		ticker.fire(now)
	}
}

// Live reports how many tickers have not been stopped.
func (f *Fake) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, ticker := range f.tickers {
		if !ticker.isStopped() {
			n++
		}
	}
	return n
}

type Ticker struct {
	Interval time.Duration

	mu      sync.Mutex
	stopped bool
	ch      chan time.Time
}

func (t *Ticker) C() <-chan time.Time {
	return t.ch
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *Ticker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *Ticker) fire(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	select {
	case t.ch <- now:
	default:
	}
}
