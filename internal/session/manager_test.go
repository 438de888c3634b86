//go:build unix

package session

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTarget = domain.Target{Address: "example.test", Port: 22, Username: "tester"}

func shellFactory(script string) CommandFactory {
	return func(domain.Target, string) (*exec.Cmd, error) {
		return exec.Command("/bin/sh", "-c", script), nil
	}
}

// scriptedFactory hands out one script per Open call, in order.
func scriptedFactory(scripts ...string) CommandFactory {
	next := make(chan string, len(scripts))
	for _, s := range scripts {
		next <- s
	}
	return func(domain.Target, string) (*exec.Cmd, error) {
		return exec.Command("/bin/sh", "-c", <-next), nil
	}
}

func newTestManager(t *testing.T, factory CommandFactory) *Manager {
	t.Helper()

	m := NewManager(factory, Config{})
	t.Cleanup(m.CloseAll)
	return m
}

func drainUntil(t *testing.T, m *Manager, id string, want string) string {
	t.Helper()

	var collected strings.Builder
	require.Eventually(t, func() bool {
		out, err := m.Drain(id)
		require.NoError(t, err)
		collected.WriteString(out)
		return strings.Contains(collected.String(), want)
	}, 5*time.Second, 10*time.Millisecond)

	return collected.String()
}

func TestManagerSessionsHaveIndependentBuffers(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, scriptedFactory(
		"printf 'alpha-output'; sleep 5",
		"printf 'beta-output'; sleep 5",
	))

	a, err := m.Open(context.Background(), testTarget, "")
	require.NoError(t, err)
	b, err := m.Open(context.Background(), testTarget, "")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	outA := drainUntil(t, m, a, "alpha-output")
	outB := drainUntil(t, m, b, "beta-output")

	assert.NotContains(t, outA, "beta-output")
	assert.NotContains(t, outB, "alpha-output")
}

func TestManagerWriteReachesProcess(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("read line; printf 'got:%s' \"$line\"; sleep 5"))

	id, err := m.Open(context.Background(), testTarget, "")
	require.NoError(t, err)

	require.NoError(t, m.Write(id, []byte("hello\r")))

	drainUntil(t, m, id, "got:hello")
}

func TestManagerSetsTerminalType(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("printf 'term=%s' \"$TERM\"; sleep 5"))

	id, err := m.Open(context.Background(), testTarget, "")
	require.NoError(t, err)

	drainUntil(t, m, id, "term=xterm-256color")
}

func TestManagerResizePropagatesWindowSize(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("read _; stty size; sleep 5"))

	id, err := m.Open(context.Background(), testTarget, "")
	require.NoError(t, err)

	require.NoError(t, m.Resize(id, 132, 50))
	require.NoError(t, m.Write(id, []byte("\r")))

	drainUntil(t, m, id, "50 132")
}

func TestManagerResizeUnknownSession(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("true"))

	err := m.Resize("missing", 80, 24)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManagerCloseThenWriteIsNoop(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("sleep 30"))

	id, err := m.Open(context.Background(), testTarget, "")
	require.NoError(t, err)
	done := m.Done(id)

	require.NoError(t, m.Close(id))
	require.NoError(t, m.Close(id))
	assert.NoError(t, m.Write(id, []byte("ls\r")))

	_, err = m.Drain(id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = m.IdleSeconds(id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("process was not terminated by Close")
	}
}

func TestManagerDoneClosesWhenProcessExits(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("printf bye"))

	id, err := m.Open(context.Background(), testTarget, "")
	require.NoError(t, err)

	select {
	case <-m.Done(id):
	case <-time.After(5 * time.Second):
		t.Fatal("Done was not closed after exit")
	}

	drainUntil(t, m, id, "bye")
	infos := m.List()
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Exited)
}

func TestManagerDoneWaitsForFinalOutput(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("printf 'Permission denied (publickey,password).\\n'; exit 255"))

	for range 25 {
		id, err := m.Open(context.Background(), testTarget, "")
		require.NoError(t, err)

		select {
		case <-m.Done(id):
		case <-time.After(5 * time.Second):
			t.Fatal("Done was not closed after exit")
		}

		out, err := m.Drain(id)
		require.NoError(t, err)
		assert.Contains(t, out, "Permission denied")

		require.NoError(t, m.Close(id))
	}
}

func TestManagerCloseAllRemovesEverySession(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, shellFactory("sleep 30"))

	for i := 0; i < 3; i++ {
		_, err := m.Open(context.Background(), testTarget, "")
		require.NoError(t, err)
	}
	require.Len(t, m.List(), 3)

	m.CloseAll()

	assert.Empty(t, m.List())
}

func TestManagerOpenReportsConnectionErrors(t *testing.T) {
	t.Parallel()

	t.Run("factory failure", func(t *testing.T) {
		m := newTestManager(t, func(domain.Target, string) (*exec.Cmd, error) {
			return nil, errors.New("sshpass not installed")
		})

		_, err := m.Open(context.Background(), testTarget, "secret")
		require.ErrorIs(t, err, domain.ErrConnection)
		assert.ErrorContains(t, err, "sshpass not installed")
	})

	t.Run("spawn failure", func(t *testing.T) {
		m := newTestManager(t, func(domain.Target, string) (*exec.Cmd, error) {
			return exec.Command("/nonexistent/ssh-client"), nil
		})

		_, err := m.Open(context.Background(), testTarget, "")
		require.ErrorIs(t, err, domain.ErrConnection)
		assert.Empty(t, m.List())
	})

	t.Run("invalid target", func(t *testing.T) {
		m := newTestManager(t, shellFactory("true"))

		_, err := m.Open(context.Background(), domain.Target{Address: "example.test"}, "")
		require.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}
