package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

var (
	// ErrSuperseded is returned for work whose generation was replaced by a
	// newer connect or disconnect while it was in flight.
	ErrSuperseded   = errors.New("request superseded")
	ErrNotConnected = errors.New("not connected")
	ErrNotDirectory = errors.New("not a directory")
)

const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultInitDelay    = 500 * time.Millisecond
	DefaultListingDelay = 800 * time.Millisecond

	authFailureMarker = "Permission denied"
)

// DefaultInitCommands are typed into every new shell.
var DefaultInitCommands = []string{"alias ls='ls --color=auto'"}

type ControllerDeps struct {
	Hosts       ports.HostRepository
	Vault       *Vault
	Sessions    ports.SessionManager
	Directories *DirectoryService
	Transfers   *TransferService
	Renderer    ports.Renderer
	Alerter     ports.Alerter
	// Listings is optional.
	Listings ports.ListingObserver
}

type ControllerConfig struct {
	PollInterval time.Duration
	// InitDelay and ListingDelay are measured from the moment the session
	// opens. Negative values disable the step.
	InitDelay    time.Duration
	ListingDelay time.Duration
	InitCommands []string
	Clock        ports.Clock
	Logger       *slog.Logger
}

// DefaultControllerConfig returns the timings used by interactive clients.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		PollInterval: DefaultPollInterval,
		InitDelay:    DefaultInitDelay,
		ListingDelay: DefaultListingDelay,
		InitCommands: DefaultInitCommands,
	}
}

// Controller drives one interactive connection at a time. Every connect and
// disconnect starts a new generation; results that come back under an older
// generation are discarded, and sessions they opened are closed.
type Controller struct {
	deps ControllerDeps

	pollInterval time.Duration
	initDelay    time.Duration
	listingDelay time.Duration
	initCommands []string
	clock        ports.Clock
	logger       *slog.Logger

	generation atomic.Uint64
	// alertedGen is the newest connect attempt that has shown its alert.
	alertedGen atomic.Uint64

	mu         sync.Mutex
	state      ConnState
	host       *domain.Host
	secret     string
	sessionID  string
	currentDir string
	files      []domain.FileEntry
	transfer   *TransferProgress
	ended      chan struct{}
}

func NewController(deps ControllerDeps, cfg ControllerConfig) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		deps:         deps,
		pollInterval: cfg.PollInterval,
		initDelay:    cfg.InitDelay,
		listingDelay: cfg.ListingDelay,
		initCommands: append([]string(nil), cfg.InitCommands...),
		clock:        cfg.Clock,
		logger:       cfg.Logger,
		state:        StateIdle,
		currentDir:   domain.HomePath,
	}
}

func (c *Controller) isCurrent(gen uint64) bool {
	return c.generation.Load() == gen
}

// Connect opens a shell on the host. It returns once the session is up or
// the attempt failed.
func (c *Controller) Connect(ctx context.Context, id domain.HostID) error {
	c.mu.Lock()
	gen := c.generation.Add(1)
	previous := c.detachLocked()
	c.state = StateConnecting
	c.mu.Unlock()

	c.closeSession(previous)

	host, err := c.deps.Hosts.GetByID(ctx, id)
	if err != nil {
		return c.failConnect(gen, fmt.Errorf("load host: %w", err))
	}
	target := host.Target()

	c.deps.Renderer.Output(fmt.Sprintf("\x1b[33mConnecting to %s...\x1b[0m\r\n", target))

	secret, _, err := c.deps.Vault.Fetch(ctx, host.ID)
	if err != nil {
		if !c.isCurrent(gen) {
			return ErrSuperseded
		}
		if errors.Is(err, domain.ErrUserCanceled) {
			c.deps.Renderer.Output("\x1b[33mAuthentication canceled\x1b[0m\r\n")
			c.setIdle(gen)
			return err
		}
		c.logger.Warn("saved password unavailable, connecting without it", "host", host.ID, "error", err)
		secret = ""
	}

	if !c.isCurrent(gen) {
		return ErrSuperseded
	}

	sessionID, err := c.deps.Sessions.Open(ctx, target, secret)
	if err != nil {
		return c.failConnect(gen, err)
	}

	c.mu.Lock()
	if !c.isCurrent(gen) {
		c.mu.Unlock()
		c.logger.Debug("closing superseded session", "session", sessionID)
		c.closeSession(sessionID)
		return ErrSuperseded
	}
	ended := make(chan struct{})
	c.state = StateConnected
	c.host = &host
	c.secret = secret
	c.sessionID = sessionID
	c.currentDir = domain.HomePath
	c.files = nil
	c.ended = ended
	c.mu.Unlock()

	c.logger.Info("connected", "host", host.ID, "session", sessionID)
	c.deps.Renderer.Output(fmt.Sprintf("\x1b[32mConnected to %s\x1b[0m\r\n", host.Address))

	go c.poll(gen, sessionID, ended)
	go c.prepare(gen, sessionID, ended)

	return nil
}

func (c *Controller) failConnect(gen uint64, err error) error {
	if !c.isCurrent(gen) {
		return ErrSuperseded
	}

	c.setIdle(gen)
	c.logger.Info("connect failed", "error", err)
	c.deps.Renderer.Output(fmt.Sprintf("\x1b[31mConnection failed: %s\x1b[0m\r\n", err))
	c.alertOnce(gen, "Connection failed", err.Error())

	return err
}

// alertOnce shows at most one alert for the attempt started at gen. A late
// alert from an older attempt never uses up a newer attempt's alert.
func (c *Controller) alertOnce(gen uint64, title, message string) {
	for {
		last := c.alertedGen.Load()
		if last >= gen {
			return
		}
		if c.alertedGen.CompareAndSwap(last, gen) {
			c.deps.Alerter.Alert(title, message)
			return
		}
	}
}

func (c *Controller) setIdle(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isCurrent(gen) {
		c.state = StateIdle
	}
}

// poll forwards session output until the session ends or the generation
// moves on. Managers that implement ports.OutputNotifier wake it between
// ticks.
func (c *Controller) poll(gen uint64, sessionID string, ended <-chan struct{}) {
	ticker := c.clock.NewTicker(c.pollInterval)
	defer ticker.Stop()

	exited := c.deps.Sessions.Done(sessionID)

	var notify <-chan struct{}
	if notifier, ok := c.deps.Sessions.(ports.OutputNotifier); ok {
		if ch, err := notifier.Notify(sessionID); err == nil {
			notify = ch
		}
	}

	for {
		select {
		case <-ended:
			return
		case <-ticker.C():
			if !c.pump(gen, sessionID) {
				return
			}
		case <-notify:
			if !c.pump(gen, sessionID) {
				return
			}
		case <-exited:
			if c.pump(gen, sessionID) {
				c.sessionExited(gen)
			}
			return
		}
	}
}

// pump reports whether polling should continue.
func (c *Controller) pump(gen uint64, sessionID string) bool {
	if !c.isCurrent(gen) {
		return false
	}

	output, err := c.deps.Sessions.Drain(sessionID)
	if err != nil {
		c.logger.Debug("output polling stopped", "session", sessionID, "error", err)
		return false
	}
	if output == "" {
		return true
	}
	if !c.isCurrent(gen) {
		return false
	}

	c.deps.Renderer.Output(output)

	if strings.Contains(output, authFailureMarker) {
		if c.teardown(gen) {
			c.alertOnce(gen, "Authentication failed", "Wrong password or key, check the host settings and try again")
		}
		return false
	}

	return true
}

func (c *Controller) sessionExited(gen uint64) {
	if c.teardown(gen) {
		c.deps.Renderer.Output("\r\n\x1b[33mConnection closed\x1b[0m\r\n")
	}
}

// teardown ends the session of gen if it is still the live one.
func (c *Controller) teardown(gen uint64) bool {
	c.mu.Lock()
	if !c.isCurrent(gen) {
		c.mu.Unlock()
		return false
	}
	c.generation.Add(1)
	sessionID := c.detachLocked()
	c.mu.Unlock()

	c.closeSession(sessionID)
	return true
}

// prepare types the init commands and loads the home listing once the
// shell had time to start.
func (c *Controller) prepare(gen uint64, sessionID string, ended <-chan struct{}) {
	start := c.clock.Now()

	wait := func(delay time.Duration) bool {
		remaining := delay - c.clock.Now().Sub(start)
		if remaining <= 0 {
			return c.isCurrent(gen)
		}
		select {
		case <-ended:
			return false
		case <-c.clock.After(remaining):
			return c.isCurrent(gen)
		}
	}

	if c.initDelay >= 0 && len(c.initCommands) > 0 {
		if !wait(c.initDelay) {
			return
		}
		for _, command := range c.initCommands {
			if err := c.deps.Sessions.Write(sessionID, []byte(command+"\r")); err != nil {
				c.logger.Debug("init command not sent", "session", sessionID, "error", err)
				return
			}
		}
	}

	if c.listingDelay >= 0 && c.deps.Directories != nil {
		if !wait(c.listingDelay) {
			return
		}
		if _, err := c.List(context.Background(), domain.HomePath); err != nil && !errors.Is(err, ErrSuperseded) {
			c.logger.Debug("initial listing failed", "error", err)
		}
	}
}

// Disconnect closes the live session and fences everything still in flight.
func (c *Controller) Disconnect(_ context.Context) {
	c.mu.Lock()
	c.generation.Add(1)
	sessionID := c.detachLocked()
	c.mu.Unlock()

	c.closeSession(sessionID)
	c.deps.Renderer.Clear()
}

// detachLocked resets the connection view and returns the session that was
// live, if any. Callers hold c.mu.
func (c *Controller) detachLocked() string {
	sessionID := c.sessionID

	if c.ended != nil {
		close(c.ended)
		c.ended = nil
	}
	c.state = StateIdle
	c.host = nil
	c.secret = ""
	c.sessionID = ""
	c.currentDir = domain.HomePath
	c.files = nil
	c.transfer = nil

	return sessionID
}

func (c *Controller) closeSession(sessionID string) {
	if sessionID == "" {
		return
	}
	if err := c.deps.Sessions.Close(sessionID); err != nil {
		c.logger.Debug("close session", "session", sessionID, "error", err)
	}
}

// Ended is closed when the current connection goes away. Without a
// connection the returned channel is already closed.
func (c *Controller) Ended() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return c.ended
}

func (c *Controller) Write(data []byte) error {
	sessionID := c.currentSession()
	if sessionID == "" {
		return nil
	}

	return c.deps.Sessions.Write(sessionID, data)
}

func (c *Controller) Resize(cols, rows uint16) error {
	sessionID := c.currentSession()
	if sessionID == "" {
		return nil
	}

	return c.deps.Sessions.Resize(sessionID, cols, rows)
}

func (c *Controller) currentSession() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

type connection struct {
	gen    uint64
	host   domain.Host
	secret string
	dir    string
	files  []domain.FileEntry
}

func (c *Controller) connection() (connection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected || c.host == nil {
		return connection{}, ErrNotConnected
	}

	return connection{
		gen:    c.generation.Load(),
		host:   *c.host,
		secret: c.secret,
		dir:    c.currentDir,
		files:  c.files,
	}, nil
}

// List loads path into the file browser. A failed listing leaves the
// browser empty and is returned alongside the empty slice.
func (c *Controller) List(ctx context.Context, path string) ([]domain.FileEntry, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = domain.HomePath
	}

	files, listErr := c.deps.Directories.List(ctx, conn.host.Target(), conn.secret, path)
	if listErr != nil {
		c.logger.Debug("directory listing failed", "path", path, "error", listErr)
		files = []domain.FileEntry{}
	}

	c.mu.Lock()
	if !c.isCurrent(conn.gen) {
		c.mu.Unlock()
		return nil, ErrSuperseded
	}
	c.files = files
	if listErr == nil {
		c.currentDir = path
	}
	shownDir := c.currentDir
	c.mu.Unlock()

	if c.deps.Listings != nil {
		c.deps.Listings.Listing(shownDir, files)
	}

	return files, listErr
}

// Enter descends into a directory of the current listing.
func (c *Controller) Enter(ctx context.Context, name string) ([]domain.FileEntry, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, err
	}

	for _, entry := range conn.files {
		if entry.Name == name && !entry.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, name)
		}
	}

	return c.List(ctx, domain.JoinRemotePath(conn.dir, name))
}

// Up lists the parent of the current directory. At a root it is a no-op.
func (c *Controller) Up(ctx context.Context) ([]domain.FileEntry, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, err
	}

	parent := domain.ParentRemotePath(conn.dir)
	if parent == conn.dir {
		return conn.files, nil
	}

	return c.List(ctx, parent)
}

// Upload copies a local file into the current remote directory and refreshes
// the listing on success.
func (c *Controller) Upload(ctx context.Context, localPath string) error {
	conn, err := c.connection()
	if err != nil {
		return err
	}

	name := filepath.Base(localPath)
	remotePath := domain.JoinRemotePath(conn.dir, name)

	progress := c.startTransfer(conn.gen, TransferUpload, name)
	err = c.deps.Transfers.Upload(ctx, conn.host.Target(), conn.secret, localPath, remotePath)
	c.finishTransfer(progress)

	if !c.isCurrent(conn.gen) {
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Info("upload failed", "file", name, "error", err)
		return err
	}

	if _, err := c.List(ctx, conn.dir); err != nil && !errors.Is(err, ErrSuperseded) {
		c.logger.Debug("refresh after upload failed", "error", err)
	}

	return nil
}

// Download copies name from the current remote directory to localPath. An
// empty localPath keeps the remote file name.
func (c *Controller) Download(ctx context.Context, name, localPath string) error {
	conn, err := c.connection()
	if err != nil {
		return err
	}
	if localPath == "" {
		localPath = name
	}

	progress := c.startTransfer(conn.gen, TransferDownload, name)
	err = c.deps.Transfers.Download(ctx, conn.host.Target(), conn.secret, domain.JoinRemotePath(conn.dir, name), localPath)
	c.finishTransfer(progress)

	if !c.isCurrent(conn.gen) {
		return ErrSuperseded
	}
	if err != nil {
		c.deps.Alerter.Alert("Download failed", err.Error())
		return err
	}

	return nil
}

func (c *Controller) startTransfer(gen uint64, direction TransferDirection, name string) *TransferProgress {
	progress := &TransferProgress{Direction: direction, FileName: name, StartedAt: c.clock.Now()}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isCurrent(gen) {
		c.transfer = progress
	}

	return progress
}

func (c *Controller) finishTransfer(progress *TransferProgress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transfer == progress {
		c.transfer = nil
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:      c.state,
		SessionID:  c.sessionID,
		CurrentDir: c.currentDir,
		Files:      append([]domain.FileEntry(nil), c.files...),
		Generation: c.generation.Load(),
	}
	if c.host != nil {
		host := *c.host
		snap.Host = &host
	}
	if c.transfer != nil {
		progress := *c.transfer
		snap.Transfer = &progress
	}

	return snap
}
