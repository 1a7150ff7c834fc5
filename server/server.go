package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/poiesic/talentscout/popular"
	"github.com/poiesic/talentscout/search"
	"github.com/poiesic/talentscout/storage"
	"github.com/robfig/cron/v3"
)

const (
	defaultAddr            = ":8080"
	defaultRebuildSchedule = "@every 15m"
	shutdownTimeout        = 5 * time.Second
)

// Server wires the search engine, history store, and popular-query clusterer
// behind an HTTP API.
type Server struct {
	engine          *search.Engine
	history         storage.HistoryRepository
	clusterer       *popular.Clusterer
	embedder        search.QueryEmbedder
	addr            string
	rebuildSchedule string
	router          chi.Router
	httpServer      *http.Server
	scheduler       *cron.Cron
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAddr sets the listen address. Default is ":8080".
func WithAddr(addr string) Option {
	return func(s *Server) error {
		if addr != "" {
			s.addr = addr
		}
		return nil
	}
}

// WithClusterer attaches a popular-query clusterer. Without one the popular
// endpoint serves an empty list and no rebuild job is scheduled.
func WithClusterer(clusterer *popular.Clusterer) Option {
	return func(s *Server) error {
		s.clusterer = clusterer
		return nil
	}
}

// WithQueryEmbedder lets the popular endpoint embed ?q= probes so Match can
// compare them by vector similarity. Without one, probes match on normalized
// text only.
func WithQueryEmbedder(embedder search.QueryEmbedder) Option {
	return func(s *Server) error {
		s.embedder = embedder
		return nil
	}
}

// WithRebuildSchedule sets the cron schedule for popular cluster rebuilds.
// Default is "@every 15m".
func WithRebuildSchedule(schedule string) Option {
	return func(s *Server) error {
		if schedule != "" {
			s.rebuildSchedule = schedule
		}
		return nil
	}
}

// NewServer creates a new HTTP server.
func NewServer(engine *search.Engine, history storage.HistoryRepository, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if history == nil {
		return nil, ErrHistoryRepositoryRequired
	}

	s := &Server{
		engine:          engine,
		history:         history,
		addr:            defaultAddr,
		rebuildSchedule: defaultRebuildSchedule,
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
	}))

	r.Post("/api/search", s.handleSearch)
	r.Get("/api/history", s.handleListHistory)
	r.Delete("/api/history/{id}", s.handleDeleteHistoryEntry)
	r.Delete("/api/history", s.handleClearHistory)
	r.Get("/api/popular", s.handlePopular)
	r.Get("/health", s.handleHealth)
	return r
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called. The popular rebuild job is scheduled before serving.
func (s *Server) Start() error {
	if s.clusterer != nil {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(s.rebuildSchedule, s.rebuildPopular)
		if err != nil {
			return ErrInvalidSchedule
		}
		scheduler.Start()
		s.scheduler = scheduler

		// Warm start so the popular endpoint is useful immediately.
		s.rebuildPopular()
	}

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	s.logger.Info("http server listening", "addr", s.addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the rebuild job and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) rebuildPopular() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.clusterer.RebuildFrom(ctx, s.history); err != nil {
		s.logger.Error("error rebuilding popular query clusters", "err", err)
	}
}
