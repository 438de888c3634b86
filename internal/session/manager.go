package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/google/uuid"
)

const (
	defaultRows = 24
	defaultCols = 80

	readChunkSize = 32 * 1024
	killGrace     = 2 * time.Second
	flushGrace    = 500 * time.Millisecond
	terminalType  = "xterm-256color"
)

// CommandFactory returns the client process to bind to a new PTY.
type CommandFactory func(target domain.Target, secret string) (*exec.Cmd, error)

type Config struct {
	Rows              uint16
	Cols              uint16
	BufferLimit       int
	KeepAliveInterval time.Duration
	Clock             ports.Clock
	Logger            *slog.Logger
}

type Session struct {
	ID        string
	Target    domain.Target
	CreatedAt time.Time

	cmd        *exec.Cmd
	master     *os.File
	buffer     *OutputBuffer
	done       chan struct{}
	readerDone chan struct{}

	closeOnce sync.Once
}

type Info struct {
	ID        string
	Target    domain.Target
	CreatedAt time.Time
	Pid       int
	Exited    bool
	// IdleSeconds counts from the last keepalive or input.
	IdleSeconds float64
}

// registry is the only owner of the session map.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func (r *registry) add(sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = sess
}

func (r *registry) get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

func (r *registry) remove(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	return sess, ok
}

func (r *registry) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

type Manager struct {
	commands    CommandFactory
	rows        uint16
	cols        uint16
	bufferLimit int
	clock       ports.Clock
	liveness    *Liveness
	logger      *slog.Logger

	registry registry
}

var _ ports.SessionManager = (*Manager)(nil)

func NewManager(commands CommandFactory, cfg Config) *Manager {
	if cfg.Rows == 0 {
		cfg.Rows = defaultRows
	}
	if cfg.Cols == 0 {
		cfg.Cols = defaultCols
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Manager{
		commands:    commands,
		rows:        cfg.Rows,
		cols:        cfg.Cols,
		bufferLimit: cfg.BufferLimit,
		clock:       cfg.Clock,
		liveness:    NewLiveness(cfg.Clock, cfg.KeepAliveInterval),
		logger:      cfg.Logger,
		registry:    registry{sessions: make(map[string]*Session)},
	}
}

// Open spawns the client on a fresh PTY and returns once the process has
// started. Output is collected in the background.
func (m *Manager) Open(ctx context.Context, target domain.Target, secret string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := target.Validate(); err != nil {
		return "", err
	}

	cmd, err := m.commands(target, secret)
	if err != nil {
		return "", fmt.Errorf("%w: build client command: %w", domain.ErrConnection, err)
	}
	cmd.Env = withTerminalEnv(cmd.Env)

	master, err := startPTY(cmd, m.rows, m.cols)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}

	sess := &Session{
		ID:         uuid.NewString(),
		Target:     target,
		CreatedAt:  m.clock.Now(),
		cmd:        cmd,
		master:     master,
		buffer:     NewOutputBuffer(m.bufferLimit),
		done:       make(chan struct{}),
		readerDone: make(chan struct{}),
	}

	m.registry.add(sess)
	m.liveness.Start(sess.ID)

	go m.read(sess)
	go m.wait(sess)

	m.logger.Info("session opened", "session", sess.ID, "target", target.String(), "pid", cmd.Process.Pid)
	return sess.ID, nil
}

func (m *Manager) read(sess *Session) {
	defer close(sess.readerDone)

	var decoder textDecoder
	buf := make([]byte, readChunkSize)

	for {
		n, err := sess.master.Read(buf)
		if n > 0 {
			if text, ok := decoder.decode(buf[:n]); ok {
				sess.buffer.Append(text)
			} else {
				m.logger.Debug("dropped undecodable output", "session", sess.ID, "bytes", n)
			}
		}
		if err != nil {
			if !isClosedRead(err) {
				m.logger.Debug("session reader stopped", "session", sess.ID, "error", err)
			}
			return
		}
	}
}

// wait closes done after the process exits and the reader has copied its
// last output into the buffer. A descendant that keeps the terminal open
// holds the reader back for at most flushGrace.
func (m *Manager) wait(sess *Session) {
	err := sess.cmd.Wait()

	select {
	case <-sess.readerDone:
	case <-time.After(flushGrace):
		m.logger.Debug("session output still open after exit", "session", sess.ID)
	}
	close(sess.done)

	if err != nil {
		m.logger.Info("session process exited", "session", sess.ID, "error", err)
		return
	}
	m.logger.Info("session process exited", "session", sess.ID)
}

// Write forwards input to the session. Unknown or already closed sessions
// are ignored.
func (m *Manager) Write(id string, data []byte) error {
	sess, ok := m.registry.get(id)
	if !ok {
		return nil
	}

	m.liveness.Touch(id)

	if _, err := sess.master.Write(data); err != nil {
		if errors.Is(err, os.ErrClosed) {
			return nil
		}
		return fmt.Errorf("write to session %s: %w", id, err)
	}

	return nil
}

func (m *Manager) Resize(id string, cols, rows uint16) error {
	sess, ok := m.registry.get(id)
	if !ok {
		return fmt.Errorf("resize %q: %w", id, domain.ErrSessionNotFound)
	}

	if err := setWinsize(sess.master, cols, rows); err != nil {
		return fmt.Errorf("resize session %s: %w", id, err)
	}

	return nil
}

func (m *Manager) Drain(id string) (string, error) {
	sess, ok := m.registry.get(id)
	if !ok {
		return "", fmt.Errorf("drain %q: %w", id, domain.ErrSessionNotFound)
	}

	return sess.buffer.Drain(), nil
}

// Notify exposes the buffer signal for push-style consumers.
func (m *Manager) Notify(id string) (<-chan struct{}, error) {
	sess, ok := m.registry.get(id)
	if !ok {
		return nil, fmt.Errorf("notify %q: %w", id, domain.ErrSessionNotFound)
	}

	return sess.buffer.Notify(), nil
}

// Done is closed when the session's process exits and its final output is
// in the buffer. Unknown sessions report a closed channel.
func (m *Manager) Done(id string) <-chan struct{} {
	sess, ok := m.registry.get(id)
	if !ok {
		closed := make(chan struct{})
		close(closed)
		return closed
	}

	return sess.done
}

func (m *Manager) IdleSeconds(id string) (float64, error) {
	return m.liveness.IdleSeconds(id)
}

// Close tears the session down. Closing an unknown session is a no-op.
func (m *Manager) Close(id string) error {
	sess, ok := m.registry.remove(id)
	if !ok {
		return nil
	}

	m.liveness.Stop(id)
	m.terminate(sess)

	m.logger.Info("session closed", "session", id)
	return nil
}

func (m *Manager) CloseAll() {
	for _, id := range m.registry.ids() {
		_ = m.Close(id)
	}
}

func (m *Manager) List() []Info {
	ids := m.registry.ids()
	infos := make([]Info, 0, len(ids))

	for _, id := range ids {
		sess, ok := m.registry.get(id)
		if !ok {
			continue
		}

		info := Info{ID: sess.ID, Target: sess.Target, CreatedAt: sess.CreatedAt}
		if idle, err := m.liveness.IdleSeconds(id); err == nil {
			info.IdleSeconds = idle
		}
		if sess.cmd.Process != nil {
			info.Pid = sess.cmd.Process.Pid
		}
		select {
		case <-sess.done:
			info.Exited = true
		default:
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})

	return infos
}

// terminate closes the master, which stops the reader, then signals the
// process group. A process that ignores SIGTERM is killed after killGrace.
func (m *Manager) terminate(sess *Session) {
	sess.closeOnce.Do(func() {
		_ = sess.master.Close()

		select {
		case <-sess.done:
			return
		default:
		}

		if sess.cmd.Process == nil {
			return
		}

		pid := sess.cmd.Process.Pid
		if err := signalGroup(pid, syscall.SIGTERM); err != nil {
			m.logger.Debug("signal session process", "session", sess.ID, "error", err)
		}

		go func() {
			select {
			case <-sess.done:
			case <-time.After(killGrace):
				_ = signalGroup(pid, syscall.SIGKILL)
			}
		}()
	})
}

func withTerminalEnv(env []string) []string {
	if env == nil {
		env = os.Environ()
	}

	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if len(kv) >= 5 && kv[:5] == "TERM=" {
			continue
		}
		out = append(out, kv)
	}

	return append(out, "TERM="+terminalType)
}

func isClosedRead(err error) bool {
	return errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO)
}
