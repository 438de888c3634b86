package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/yzterm/internal/adapters/presence/none"
	"github.com/bnema/yzterm/internal/adapters/remote/openssh"
	"github.com/bnema/yzterm/internal/application"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/bnema/yzterm/internal/ports/mocks"
	"github.com/bnema/yzterm/internal/session"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var webHost = domain.Host{ID: "web-1", Name: "Web", Address: "10.0.0.1", Port: 22, Username: "root", SecretRef: "yzterm/hosts/web-1/password"}

// echoSessions reflects every write back as session output.
type echoSessions struct {
	mu      sync.Mutex
	next    int
	output  map[string]*strings.Builder
	done    map[string]chan struct{}
	resizes [][2]uint16
}

func newEchoSessions() *echoSessions {
	return &echoSessions{output: map[string]*strings.Builder{}, done: map[string]chan struct{}{}}
}

func (e *echoSessions) Open(_ context.Context, _ domain.Target, _ string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	id := fmt.Sprintf("session-%d", e.next)
	e.output[id] = &strings.Builder{}
	e.done[id] = make(chan struct{})
	return id, nil
}

func (e *echoSessions) Write(id string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if out, ok := e.output[id]; ok {
		out.Write(data)
	}
	return nil
}

func (e *echoSessions) Resize(_ string, cols, rows uint16) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizes = append(e.resizes, [2]uint16{cols, rows})
	return nil
}

func (e *echoSessions) Drain(id string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, ok := e.output[id]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	text := out.String()
	out.Reset()
	return text, nil
}

func (e *echoSessions) Done(id string) <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()

	if done, ok := e.done[id]; ok {
		return done
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

func (e *echoSessions) Close(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if done, ok := e.done[id]; ok {
		close(done)
		delete(e.done, id)
		delete(e.output, id)
	}
	return nil
}

func (e *echoSessions) CloseAll() {
	e.mu.Lock()
	ids := make([]string, 0, len(e.done))
	for id := range e.done {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	for _, id := range ids {
		_ = e.Close(id)
	}
}

func (e *echoSessions) open() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.done)
}

func (e *echoSessions) resizeCalls() [][2]uint16 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][2]uint16(nil), e.resizes...)
}

type bridgeFixture struct {
	server   *httptest.Server
	hosts    *mocks.MockHostRepository
	store    *mocks.MockSecretStore
	runner   *mocks.MockCommandRunner
	sessions *echoSessions
}

func newBridgeFixture(t *testing.T) *bridgeFixture {
	t.Helper()

	f := &bridgeFixture{
		hosts:    mocks.NewMockHostRepository(t),
		store:    mocks.NewMockSecretStore(t),
		runner:   mocks.NewMockCommandRunner(t),
		sessions: newEchoSessions(),
	}

	builder := openssh.NewBuilder(openssh.Config{})
	vault := application.NewVault(f.store, none.Checker{}, nil)
	factory := func(renderer ports.Renderer, alerter ports.Alerter, listings ports.ListingObserver) *application.Controller {
		return application.NewController(application.ControllerDeps{
			Hosts:       f.hosts,
			Vault:       vault,
			Sessions:    f.sessions,
			Directories: application.NewDirectoryService(builder, f.runner, nil),
			Transfers:   application.NewTransferService(builder, f.runner, nil),
			Renderer:    renderer,
			Alerter:     alerter,
			Listings:    listings,
		}, application.ControllerConfig{PollInterval: 5 * time.Millisecond, InitDelay: -1, ListingDelay: -1})
	}

	f.server = httptest.NewServer(NewServer(factory, f.hosts, nil).Routes())
	t.Cleanup(f.server.Close)

	return f
}

func (f *bridgeFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/api/terminal"
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = ws.Close() })

	return ws
}

type receivedFrame struct {
	Type    string             `json:"type"`
	Data    string             `json:"data"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
	Path    string             `json:"path"`
	Files   []domain.FileEntry `json:"files"`
}

func readFrame(t *testing.T, ws *websocket.Conn) receivedFrame {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame receivedFrame
	require.NoError(t, ws.ReadJSON(&frame))
	return frame
}

func readUntil(t *testing.T, ws *websocket.Conn, match func(receivedFrame) bool) receivedFrame {
	t.Helper()

	for {
		frame := readFrame(t, ws)
		if match(frame) {
			return frame
		}
	}
}

func send(t *testing.T, ws *websocket.Conn, frame clientFrame) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(frame))
}

func outputContaining(text string) func(receivedFrame) bool {
	return func(frame receivedFrame) bool {
		return frame.Type == frameOutput && strings.Contains(frame.Data, text)
	}
}

func TestTerminalRoundTrip(t *testing.T) {
	f := newBridgeFixture(t)
	f.hosts.EXPECT().GetByID(mock.Anything, webHost.ID).Return(webHost, nil)
	f.store.EXPECT().Get(mock.Anything, webHost.SecretRef).Return("", domain.ErrSecretNotFound)
	f.runner.EXPECT().Run(mock.Anything, mock.Anything).Return(ports.Result{
		Stdout: "total 4\ndrwxr-xr-x 2 root root 4096 Jan 1 00:00 projects\n-rw-r--r-- 1 root root 12 Jan 1 00:00 notes.txt\n",
	}, nil).Once()

	ws := f.dial(t)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, ws, clientFrame{Type: "bogus"})
	send(t, ws, clientFrame{Type: frameConnect, HostID: "web-1"})
	require.Eventually(t, func() bool { return f.sessions.open() == 1 }, 2*time.Second, 5*time.Millisecond)
	send(t, ws, clientFrame{Type: frameReady})

	first := readFrame(t, ws)
	assert.Equal(t, frameOutput, first.Type)
	assert.Contains(t, first.Data, "Connecting to root@10.0.0.1:22")
	readUntil(t, ws, outputContaining("Connected to 10.0.0.1"))

	send(t, ws, clientFrame{Type: frameInput, Data: "whoami\r"})
	readUntil(t, ws, outputContaining("whoami\r"))

	send(t, ws, clientFrame{Type: frameResize, Cols: 132, Rows: 50})
	send(t, ws, clientFrame{Type: frameResize})
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([][2]uint16{{132, 50}}, f.sessions.resizeCalls())
	}, 2*time.Second, 5*time.Millisecond)

	send(t, ws, clientFrame{Type: frameList, Path: "~"})
	files := readUntil(t, ws, func(frame receivedFrame) bool { return frame.Type == frameFiles })
	assert.Equal(t, "~", files.Path)
	require.Len(t, files.Files, 2)
	assert.Equal(t, "projects", files.Files[0].Name)
	assert.True(t, files.Files[0].IsDir())

	send(t, ws, clientFrame{Type: frameDisconnect})
	readUntil(t, ws, func(frame receivedFrame) bool { return frame.Type == frameClear })
	assert.Zero(t, f.sessions.open())
}

func TestTerminalConnectFailureSendsAlert(t *testing.T) {
	f := newBridgeFixture(t)
	f.hosts.EXPECT().GetByID(mock.Anything, domain.HostID("ghost")).Return(domain.Host{}, domain.ErrHostNotFound)

	ws := f.dial(t)
	send(t, ws, clientFrame{Type: frameReady})
	send(t, ws, clientFrame{Type: frameConnect, HostID: "ghost"})

	alert := readUntil(t, ws, func(frame receivedFrame) bool { return frame.Type == frameAlert })
	assert.Equal(t, "Connection failed", alert.Title)
	assert.Contains(t, alert.Message, "host not found")
}

func TestTerminalCloseTearsDownSession(t *testing.T) {
	f := newBridgeFixture(t)
	f.hosts.EXPECT().GetByID(mock.Anything, webHost.ID).Return(webHost, nil)
	f.store.EXPECT().Get(mock.Anything, webHost.SecretRef).Return("", domain.ErrSecretNotFound)

	ws := f.dial(t)
	send(t, ws, clientFrame{Type: frameReady})
	send(t, ws, clientFrame{Type: frameConnect, HostID: "web-1"})
	readUntil(t, ws, outputContaining("Connected to"))

	require.NoError(t, ws.Close())

	require.Eventually(t, func() bool { return f.sessions.open() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestListHosts(t *testing.T) {
	f := newBridgeFixture(t)
	f.hosts.EXPECT().List(mock.Anything).Return([]domain.Host{
		webHost,
		{ID: "db-1", Address: "db.internal", Username: "postgres"},
	}, nil)

	resp, err := http.Get(f.server.URL + "/api/hosts")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "yzterm/hosts")

	var hosts []hostView
	require.NoError(t, json.Unmarshal(body, &hosts))
	assert.Equal(t, []hostView{
		{ID: "web-1", Name: "Web", Address: "10.0.0.1", Port: 22, Username: "root", HasPassword: true},
		{ID: "db-1", Name: "postgres@db.internal", Address: "db.internal", Port: 22, Username: "postgres"},
	}, hosts)
}

func TestListHostsFailure(t *testing.T) {
	f := newBridgeFixture(t)
	f.hosts.EXPECT().List(mock.Anything).Return(nil, errors.New("disk on fire"))

	resp, err := http.Get(f.server.URL + "/api/hosts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "disk on fire")
}

func TestHealthz(t *testing.T) {
	f := newBridgeFixture(t)

	resp, err := http.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type staticSessions []session.Info

func (s staticSessions) List() []session.Info { return s }

func TestListSessions(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sessions := staticSessions{{
		ID:          "session-1",
		Target:      webHost.Target(),
		CreatedAt:   created,
		IdleSeconds: 12.5,
	}}

	server := httptest.NewServer(NewServer(nil, mocks.NewMockHostRepository(t), nil).WithSessions(sessions).Routes())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var views []sessionView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	assert.Equal(t, []sessionView{{
		ID:          "session-1",
		Target:      "root@10.0.0.1:22",
		CreatedAt:   created,
		IdleSeconds: 12.5,
	}}, views)
}

func TestListSessionsDisabledByDefault(t *testing.T) {
	f := newBridgeFixture(t)

	resp, err := http.Get(f.server.URL + "/api/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
