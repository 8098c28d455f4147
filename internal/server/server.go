package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"multi-city-planner/internal/handlers"
	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/metrics"
	"multi-city-planner/internal/planner"
	"multi-city-planner/internal/sqlite"
	"multi-city-planner/internal/transport"
)

type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	db         *sqlite.Store
	listener   net.Listener
	addr       string
	log        logger.Logger
}

type Config struct {
	Addr             string // e.g., "127.0.0.1:8080" or "127.0.0.1:0" for random port
	DBPath           string
	AllowedOrigins   []string
	RateLimitRPS     float64
	RateLimitBurst   int
	MetricsNamespace string
	Planner          planner.Config
}

func New(cfg Config, log logger.Logger) (*Server, error) {
	log.Info("Initializing trip store", "path", cfg.DBPath)
	db, err := sqlite.New(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize trip store: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	searcher := transport.NewSearchService(transport.NewOptionGenerator(), log.With("component", "transport"))
	handler := &handlers.Handler{
		DB:       db,
		Planner:  planner.NewOrchestrator(searcher, log.With("component", "planner"), cfg.Planner),
		Searcher: searcher,
		Metrics:  metrics.NewMetrics(cfg.MetricsNamespace, registry),
		Log:      log.With("component", "http"),
		Locks:    handlers.NewTripLockStore(),
	}

	router := setupRoutes(handler, registry)
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingMiddleware(log, corsMiddleware(cfg.AllowedOrigins, limiter.Limit(router))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
		db:         db,
		addr:       cfg.Addr,
		log:        log,
	}, nil
}

// Start listens on the configured address and serves in the background.
// It returns the actual address, which differs from the configured one
// when port 0 was requested.
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = listener
	actualAddr := listener.Addr().String()
	s.log.Info("Starting server", "addr", actualAddr)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", "error", err)
		}
	}()

	return actualAddr, nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.db.Close()
}

func setupRoutes(handler *handlers.Handler, gatherer prometheus.Gatherer) *httprouter.Router {
	router := httprouter.New()
	handler.RegisterRoutes(router)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return router
}

func loggingMiddleware(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		log.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.statusCode,
			"duration", time.Since(start),
		)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(next)
}
