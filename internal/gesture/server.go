package gesture

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/space-dash/internal/core"
)

const (
	readLimit    = 4 << 10
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// DefaultFPS is the sampling rate used when none is configured.
const DefaultFPS = 30

// Server accepts producer connections and feeds a Slot.
type Server struct {
	slot     *Slot
	arena    core.Size
	path     string
	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithPath sets the WebSocket endpoint path.
func WithPath(path string) Option {
	return func(s *Server) { s.path = path }
}

// WithFPS throttles pointing frames to at most fps per second.
// Zero or negative selects DefaultFPS.
func WithFPS(fps int) Option {
	return func(s *Server) {
		if fps <= 0 {
			fps = DefaultFPS
		}
		s.interval = time.Second / time.Duration(fps)
	}
}

// WithInterval sets the minimum spacing between pointing frames directly.
// Zero disables throttling.
func WithInterval(d time.Duration) Option {
	return func(s *Server) { s.interval = d }
}

// NewServer creates a bridge writing into slot.
func NewServer(slot *Slot, arena core.Size, opts ...Option) *Server {
	s := &Server{
		slot:     slot,
		arena:    arena,
		path:     "/ws",
		interval: time.Second / DefaultFPS,
		upgrader: websocket.Upgrader{
			// Producers run locally (browser page or script), so any origin is accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gesture",
		})
	}
	return s
}

// Handler returns an http.Handler serving the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.path, s)
	return mux
}

// ServeHTTP upgrades the request and reads frames until the peer leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("producer connected", "remote", r.RemoteAddr)
	defer s.logger.Info("producer disconnected", "remote", r.RemoteAddr)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, done)

	gate := throttle{interval: s.interval}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", "remote", r.RemoteAddr, "error", err)
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		msg, err := Decode(data)
		if err != nil {
			s.logger.Debug("dropping frame", "error", err)
			continue
		}
		if msg.Type == KindPointing && !gate.allow(time.Now()) {
			continue
		}
		s.slot.Apply(msg, s.arena)
	}

	// A vanished producer must not leave the player chasing a stale point.
	s.slot.Clear()
}

func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gesture bridge listening", "address", addr, "path", s.path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// throttle admits at most one event per interval.
type throttle struct {
	interval time.Duration
	last     time.Time
}

func (t *throttle) allow(now time.Time) bool {
	if t.interval <= 0 {
		return true
	}
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
