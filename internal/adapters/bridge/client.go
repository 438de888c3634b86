package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client is the renderer, alerter and listing observer of one browser
// terminal. Frames produced before the terminal reports ready are held back
// and flushed in order.
type client struct {
	ws     *websocket.Conn
	logger *slog.Logger

	mu      sync.Mutex
	ready   bool
	closed  bool
	pending []any
}

var (
	_ ports.Renderer        = (*client)(nil)
	_ ports.Alerter         = (*client)(nil)
	_ ports.ListingObserver = (*client)(nil)
)

func newClient(ws *websocket.Conn, logger *slog.Logger) *client {
	return &client{ws: ws, logger: logger}
}

func (c *client) Output(text string) {
	c.send(outputFrame{Type: frameOutput, Data: text})
}

func (c *client) Clear() {
	c.send(outputFrame{Type: frameClear})
}

func (c *client) Alert(title, message string) {
	c.send(alertFrame{Type: frameAlert, Title: title, Message: message})
}

func (c *client) Listing(path string, files []domain.FileEntry) {
	if files == nil {
		files = []domain.FileEntry{}
	}
	c.send(filesFrame{Type: frameFiles, Path: path, Files: files})
}

func (c *client) markReady() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return
	}
	c.ready = true

	pending := c.pending
	c.pending = nil
	for _, frame := range pending {
		if !c.writeLocked(frame) {
			return
		}
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.pending = nil
}

func (c *client) send(frame any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if !c.ready {
		c.pending = append(c.pending, frame)
		return
	}
	c.writeLocked(frame)
}

func (c *client) writeLocked(frame any) bool {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(frame); err != nil {
		c.logger.Debug("terminal frame not delivered", "error", err)
		c.closed = true
		return false
	}

	return true
}
