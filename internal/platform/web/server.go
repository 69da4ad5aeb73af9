// Package web bridges one engine session per websocket connection to an
// external renderer. Intents come in as JSON messages and every tick the
// connection receives the session snapshot plus the events it raised.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/mazechase/internal/games/pacman"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1024
	inboxSize      = 16
	outboxSize     = 8
)

// SessionFactory builds the engine session for a new connection.
type SessionFactory func() (*pacman.Session, error)

// Config holds bridge settings.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// TickRate is the per-connection simulation rate.
	TickRate int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{Address: ":8080", TickRate: 60}
}

// Server is the websocket renderer bridge.
type Server struct {
	config     Config
	router     *way.Router
	upgrader   websocket.Upgrader
	newSession SessionFactory
	layout     pacman.Layout
	logger     *log.Logger
}

// NewServer creates a bridge. A nil logger discards output.
func NewServer(cfg Config, newSession SessionFactory, logger *log.Logger) (*Server, error) {
	if newSession == nil {
		return nil, errors.New("web: server needs a session factory")
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	probe, err := newSession()
	if err != nil {
		return nil, fmt.Errorf("web: cannot create session: %w", err)
	}

	s := &Server{
		config:     cfg,
		newSession: newSession,
		layout:     probe.Layout(),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			// Renderers are served from anywhere, including file:// pages.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc(http.MethodGet, "/healthz", s.handleHealth)
	s.router.HandleFunc(http.MethodGet, "/layout", s.handleLayout)
	s.router.HandleFunc(http.MethodGet, "/ws", s.handleWS)
}

// Handler returns the bridge's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down with a
// 10 second grace period. Open connections are cancelled through ctx.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.logger.Info("starting websocket bridge", "address", s.config.Address)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down websocket bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok") //nolint:errcheck
}

func (s *Server) handleLayout(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.layout); err != nil {
		s.logger.Warn("cannot encode layout", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.newSession()
	if err != nil {
		s.logger.Error("cannot create session", "error", err)
		http.Error(w, "could not start a session", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("renderer connected")
	start := time.Now()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &client{conn: conn, logger: logger}
	inbox := make(chan ClientMessage, inboxSize)
	outbox := make(chan []byte, outboxSize)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.readPump(ctx, cancel, inbox)
	}()
	go func() {
		defer wg.Done()
		c.writePump(ctx, cancel, outbox)
	}()

	ticker := time.NewTicker(time.Second / time.Duration(s.config.TickRate))
	ticks := play(ctx, sess, inbox, outbox, ticker.C)
	ticker.Stop()

	cancel()
	conn.Close()
	wg.Wait()
	logger.Info("renderer disconnected", "ticks", ticks, "score", sess.Score(), "duration", time.Since(start).Round(time.Second))
}

// play owns the session: it applies intents as they arrive and pushes a
// frame per tick. While the renderer is behind, snapshots are dropped but
// their events are held and sent with the next frame that gets through.
// It returns the number of ticks run.
func play(ctx context.Context, sess *pacman.Session, inbox <-chan ClientMessage, outbox chan<- []byte, ticks <-chan time.Time) int {
	n := 0
	var pending []pacman.Event
	for {
		select {
		case <-ctx.Done():
			return n
		case msg, ok := <-inbox:
			if !ok {
				return n
			}
			apply(sess, msg)
		case <-ticks:
			sess.Tick(pacman.DirNone)
			n++
			pending = append(pending, sess.DrainEvents()...)
			data, err := json.Marshal(frameOf(sess, pending))
			if err != nil {
				continue
			}
			select {
			case outbox <- data:
				pending = nil
			default:
			}
		}
	}
}
