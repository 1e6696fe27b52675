package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/chainsight/chainsight/pkg/auth"
	"github.com/chainsight/chainsight/pkg/graph"
	"github.com/chainsight/chainsight/pkg/logging"
	"github.com/chainsight/chainsight/pkg/metrics"
	"github.com/chainsight/chainsight/pkg/session"
)

// Config tunes the HTTP server. Zero values get sensible defaults; a
// nil JWT manager disables authentication entirely.
type Config struct {
	Port     int
	Version  string
	JWT      *auth.JWTManager
	APIKeys  *auth.APIKeyStore
	Registry *metrics.Registry
	Logger   logging.Logger
	GraphQL  http.Handler
}

// Server exposes impact tracing, path finding, and crisis sessions over
// HTTP.
type Server struct {
	ix        *graph.Index
	sessions  *session.Manager
	registry  *metrics.Registry
	logger    logging.Logger
	jwt       *auth.JWTManager
	apiKeys   *auth.APIKeyStore
	graphql   http.Handler
	startTime time.Time
	version   string
	port      int
}

// NewServer creates an API server over a built index and its session
// manager.
func NewServer(ix *graph.Index, sessions *session.Manager, cfg Config) *Server {
	if cfg.Registry == nil {
		cfg.Registry = metrics.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	return &Server{
		ix:        ix,
		sessions:  sessions,
		registry:  cfg.Registry,
		logger:    cfg.Logger.With(logging.Component("api")),
		jwt:       cfg.JWT,
		apiKeys:   cfg.APIKeys,
		graphql:   cfg.GraphQL,
		startTime: time.Now(),
		version:   cfg.Version,
		port:      cfg.Port,
	}
}

// Handler builds the full middleware-wrapped route table. Split from
// Start so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.registry.Handler())

	mux.HandleFunc("/impact/downstream", s.requireAuth(s.handleDownstream))
	mux.HandleFunc("/impact/upstream", s.requireAuth(s.handleUpstream))
	mux.HandleFunc("/paths", s.requireAuth(s.handlePaths))

	mux.HandleFunc("/sessions", s.requireAuth(s.handleSessions))
	mux.HandleFunc("/sessions/", s.requireAuth(s.handleSession)) // /sessions/{id}

	if s.graphql != nil {
		mux.Handle("/graphql", s.requireAuthHandler(s.graphql))
	}

	return s.panicRecoveryMiddleware(
		s.metricsMiddleware(
			s.bodySizeLimitMiddleware(mux, 4<<20)))
}

// Start runs the server until it fails. Timeouts follow the usual
// slow-client hygiene.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("api server starting",
		logging.String("addr", addr),
		logging.String("version", s.version),
		logging.Int("nodes", s.ix.NodeCount()),
		logging.Int("edges", s.ix.EdgeCount()))

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		NodeCount: s.ix.NodeCount(),
		EdgeCount: s.ix.EdgeCount(),
		Sessions:  s.sessions.Count(),
	})
}
