package clocktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAfterFiresOnceDeadlineIsReached(t *testing.T) {
	clock := NewFake(epoch)
	ch := clock.After(time.Second)

	clock.Advance(999 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("fired before its deadline")
	default:
	}

	clock.Advance(time.Millisecond)
	select {
	case at := <-ch:
		assert.Equal(t, epoch.Add(time.Second), at)
	default:
		t.Fatal("did not fire at its deadline")
	}
}

func TestAfterWithoutDelayFiresImmediately(t *testing.T) {
	clock := NewFake(epoch)

	select {
	case at := <-clock.After(0):
		assert.Equal(t, epoch, at)
	default:
		t.Fatal("zero delay must fire immediately")
	}
}

func TestWaitForTimersUnblocksOnRegistration(t *testing.T) {
	clock := NewFake(epoch)

	registered := make(chan (<-chan time.Time), 1)
	go func() { registered <- clock.After(time.Minute) }()

	clock.WaitForTimers(1)
	clock.Advance(time.Minute)

	ch := <-registered
	require.Len(t, ch, 1)
}
