package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/prop-dev/prop"
)

// ServerConfig configures a bridge Server.
type ServerConfig struct {
	// Logger receives connection lifecycle and protocol errors.
	// Default: slog.Default()
	Logger *slog.Logger

	// ReadTimeout bounds how long a connection may stay silent before the
	// read loop gives up (default: 60s).
	ReadTimeout time.Duration

	// WriteTimeout bounds each outbound write (default: 10s).
	WriteTimeout time.Duration

	// PingInterval is how often the server pings idle connections
	// (default: 30s). Must be shorter than ReadTimeout.
	PingInterval time.Duration

	// SendBuffer is the per-connection update queue length (default: 16).
	// Updates beyond a full queue are dropped rather than blocking the
	// writer's pipeline.
	SendBuffer int
}

// ServerOption configures a bridge Server.
type ServerOption func(*ServerConfig)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *ServerConfig) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the connection read timeout.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.ReadTimeout = d
	}
}

// WithWriteTimeout sets the per-message write timeout.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.WriteTimeout = d
	}
}

// WithPingInterval sets the keepalive ping interval.
func WithPingInterval(d time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.PingInterval = d
	}
}

// WithSendBuffer sets the per-connection update queue length.
func WithSendBuffer(n int) ServerOption {
	return func(c *ServerConfig) {
		c.SendBuffer = n
	}
}

// defaultServerConfig returns the default server configuration.
func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Logger:       slog.Default(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		PingInterval: 30 * time.Second,
		SendBuffer:   16,
	}
}

// Server exposes registered containers over WebSocket.
type Server struct {
	config   ServerConfig
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	endpoints map[string]endpoint
}

// NewServer creates a bridge server with no registered containers.
func NewServer(opts ...ServerOption) *Server {
	config := defaultServerConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Server{
		config:    config,
		endpoints: make(map[string]endpoint),
	}
}

// Register exposes p under the given name. Registering a name twice is an
// error; the first registration stands.
func Register[T any](s *Server, name string, p *prop.Property[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.endpoints[name]; exists {
		return fmt.Errorf("bridge: property %q already registered", name)
	}
	s.endpoints[name] = &typedEndpoint[T]{p: p}
	return nil
}

// Names returns the registered property names in sorted order.
func (s *Server) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.endpoints))
	for name := range s.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler returns the HTTP handler serving the bridge endpoints:
//
//	GET /properties          JSON list of registered names
//	GET /properties/{name}   WebSocket upgrade for one container
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/properties", s.handleList)
	r.Get("/properties/{name}", s.handleProperty)
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Names()); err != nil {
		s.config.Logger.Error("list encode error", "error", err)
	}
}

func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.RLock()
	ep, ok := s.endpoints[name]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.config.Logger.Error("upgrade error", "property", name, "error", err)
		return
	}

	s.serveConn(conn, name, ep)
}

// serveConn runs one connection: subscribe, push the current snapshot, then
// pump committed changes out and client writes in until either side closes.
func (s *Server) serveConn(conn *websocket.Conn, name string, ep endpoint) {
	defer conn.Close()

	updates := make(chan json.RawMessage, s.config.SendBuffer)

	// Subscribing before the snapshot means a change committed during the
	// handshake is queued rather than lost. The callback runs under the
	// container's write lock: a full queue drops the update instead of
	// stalling the writer.
	id := ep.subscribe(func(raw json.RawMessage) {
		select {
		case updates <- raw:
		default:
			s.config.Logger.Debug("dropping update for slow consumer", "property", name)
		}
	})
	defer ep.unsubscribe(id)

	snapshot, err := ep.snapshot()
	if err != nil {
		s.config.Logger.Error("snapshot error", "property", name, "error", err)
		return
	}
	if err := s.writeUpdate(conn, name, snapshot); err != nil {
		s.config.Logger.Error("snapshot write error", "property", name, "error", err)
		return
	}

	done := make(chan struct{})
	go s.readLoop(conn, name, ep, done)

	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case raw := <-updates:
			if err := s.writeUpdate(conn, name, raw); err != nil {
				s.config.Logger.Error("write error", "property", name, "error", err)
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}

// readLoop applies client writes through the container's pipeline until the
// connection closes.
func (s *Server) readLoop(conn *websocket.Conn, name string, ep endpoint, done chan struct{}) {
	defer close(done)

	for {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.config.Logger.Error("read error", "property", name, "error", err)
			}
			return
		}

		var req writeRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.config.Logger.Error("write decode error", "property", name, "error", err)
			continue
		}

		applied, err := ep.apply(req.Value)
		if err != nil {
			s.config.Logger.Error("write apply error", "property", name, "error", err)
			continue
		}
		if !applied {
			s.config.Logger.Debug("write not applied", "property", name)
		}
	}
}

func (s *Server) writeUpdate(conn *websocket.Conn, name string, raw json.RawMessage) error {
	msg, err := json.Marshal(update{Name: name, Value: raw})
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, msg)
}
