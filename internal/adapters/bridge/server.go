// Package bridge exposes the connection controller to a browser terminal
// over a WebSocket carrying JSON frames.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bnema/yzterm/internal/application"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/bnema/yzterm/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// ControllerFactory builds a controller bound to one terminal connection.
type ControllerFactory func(renderer ports.Renderer, alerter ports.Alerter, listings ports.ListingObserver) *application.Controller

// SessionLister reports live PTY sessions for /api/sessions.
type SessionLister interface {
	List() []session.Info
}

type Server struct {
	newController ControllerFactory
	hosts         ports.HostRepository
	sessions      SessionLister
	logger        *slog.Logger
	upgrader      websocket.Upgrader
}

func NewServer(newController ControllerFactory, hosts ports.HostRepository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		newController: newController,
		hosts:         hosts,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 32 * 1024,
		},
	}
}

// WithSessions enables the session listing endpoint.
func (s *Server) WithSessions(sessions SessionLister) *Server {
	s.sessions = sessions
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/hosts", s.listHosts)
		r.Get("/terminal", s.terminal)
		if s.sessions != nil {
			r.Get("/sessions", s.listSessions)
		}
	})

	return r
}

func (s *Server) listHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := s.hosts.List(r.Context())
	if err != nil {
		s.logger.Error("list hosts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list hosts"})
		return
	}

	views := make([]hostView, 0, len(hosts))
	for _, host := range hosts {
		views = append(views, toHostView(host))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) listSessions(w http.ResponseWriter, _ *http.Request) {
	infos := s.sessions.List()

	views := make([]sessionView, 0, len(infos))
	for _, info := range infos {
		views = append(views, sessionView{
			ID:          info.ID,
			Target:      info.Target.String(),
			CreatedAt:   info.CreatedAt,
			Exited:      info.Exited,
			IdleSeconds: info.IdleSeconds,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) terminal(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("terminal upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newClient(ws, s.logger)
	ctrl := s.newController(c, c, c)
	defer func() {
		c.close()
		ctrl.Disconnect(context.Background())
	}()

	s.logger.Info("terminal attached", "remote", r.RemoteAddr)
	defer s.logger.Info("terminal detached", "remote", r.RemoteAddr)

	for {
		var frame clientFrame
		if err := ws.ReadJSON(&frame); err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				s.logger.Debug("malformed terminal frame", "error", err)
				continue
			}
			return
		}
		s.dispatch(ctx, c, ctrl, frame)
	}
}

func (s *Server) dispatch(ctx context.Context, c *client, ctrl *application.Controller, frame clientFrame) {
	switch frame.Type {
	case frameReady:
		c.markReady()
	case frameInput:
		if err := ctrl.Write([]byte(frame.Data)); err != nil {
			s.logger.Debug("terminal input dropped", "error", err)
		}
	case frameResize:
		if frame.Cols == 0 || frame.Rows == 0 {
			return
		}
		if err := ctrl.Resize(frame.Cols, frame.Rows); err != nil {
			s.logger.Debug("terminal resize failed", "error", err)
		}
	case frameConnect:
		go func() {
			err := ctrl.Connect(ctx, domain.HostID(frame.HostID))
			if err != nil && !errors.Is(err, application.ErrSuperseded) {
				s.logger.Info("terminal connect failed", "host", frame.HostID, "error", err)
			}
		}()
	case frameDisconnect:
		ctrl.Disconnect(ctx)
	case frameList:
		go func() {
			if _, err := ctrl.List(ctx, frame.Path); err != nil && !errors.Is(err, application.ErrSuperseded) {
				s.logger.Debug("terminal listing failed", "path", frame.Path, "error", err)
			}
		}()
	default:
		s.logger.Debug("unknown terminal frame", "type", frame.Type)
	}
}
