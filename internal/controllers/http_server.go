package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ProjectScoreService/internal/repository"
	"ProjectScoreService/internal/services"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultPort         = 8080
	defaultAddress      = "0.0.0.0"
)

type HTTPServer struct {
	httpServer  *http.Server
	mu          *sync.RWMutex
	isRunning   bool
	config      serverConfig
	logger      *slog.Logger
	controllers *controllersRegistry
}

type serverConfig struct {
	address string
	port    int
}

type controllersRegistry struct {
	project     *ProjectController
	leaderboard *LeaderboardController
	metric      *MetricController
	weight      *WeightController
	threshold   *ThresholdController
}

func NewHTTPServer(logger *slog.Logger, db *gorm.DB, address string, port int, scoringConfig services.ScoringConfig) *HTTPServer {
	config := serverConfig{
		address: normalizeAddress(address),
		port:    normalizePort(port),
	}

	repos := initializeRepositories(db)
	svcs := initializeServices(repos, scoringConfig, logger)
	ctrls := initializeControllers(svcs, logger)

	return &HTTPServer{
		config:      config,
		logger:      logger,
		mu:          &sync.RWMutex{},
		controllers: ctrls,
	}
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("server is already running")
	}

	router := s.createRouter()
	s.httpServer = s.createHTTPServer(router)

	s.logger.Info("Starting HTTP server", "address", s.config.address, "port", s.config.port)

	errCh := make(chan error, 1)
	go s.runServer(errCh)

	s.isRunning = true

	select {
	case err := <-errCh:
		s.isRunning = false
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		return s.Stop(ctx, 10*time.Second)
	}
}

func (s *HTTPServer) Stop(ctx context.Context, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil || !s.isRunning {
		return nil
	}

	s.logger.Info("Initiating server shutdown...")

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Failed to shutdown server gracefully", "error", err)
		return err
	}

	s.isRunning = false
	s.logger.Info("Server stopped successfully")
	return nil
}

func (s *HTTPServer) createRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(s.requestLoggingMiddleware)
	router.Use(sessionMiddleware)
	s.registerAllRoutes(router)
	return router
}

func (s *HTTPServer) createHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.address, s.config.port),
		Handler:      handler,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}
}

func (s *HTTPServer) runServer(errCh chan<- error) {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errCh <- err
	}
}

func (s *HTTPServer) registerAllRoutes(router *chi.Mux) {
	s.registerProjectRoutes(router)
	s.registerLeaderboardRoutes(router)
	s.registerMetricRoutes(router)
	s.registerWeightRoutes(router)
	s.registerThresholdRoutes(router)
	s.logger.Info("All HTTP routes registered successfully")
}

func (s *HTTPServer) registerProjectRoutes(router *chi.Mux) {
	router.Route("/projects", func(r chi.Router) {
		r.Post("/import", s.controllers.project.ImportProjects)
		r.Post("/import/xlsx", s.controllers.project.ImportWorkbook)
		r.Get("/{code}/scorecard", s.controllers.project.GetScorecard)
	})
}

func (s *HTTPServer) registerLeaderboardRoutes(router *chi.Mux) {
	router.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", s.controllers.leaderboard.GetLeaderboard)
		r.Get("/summary", s.controllers.leaderboard.GetHallOfFame)
	})
	router.Get("/dashboard/summary", s.controllers.leaderboard.GetDashboardSummary)
	router.Get("/roles", s.controllers.leaderboard.GetRoles)
}

func (s *HTTPServer) registerMetricRoutes(router *chi.Mux) {
	router.Route("/metrics", func(r chi.Router) {
		r.Get("/", s.controllers.metric.ListMetrics)
		r.Post("/", s.controllers.metric.CreateMetric)
		r.Put("/{id}", s.controllers.metric.UpdateMetric)
	})
	router.Get("/groups", s.controllers.metric.ListGroups)
}

func (s *HTTPServer) registerWeightRoutes(router *chi.Mux) {
	router.Route("/groups/{id}", func(r chi.Router) {
		r.Get("/weights", s.controllers.weight.GetGroupWeights)
		r.Post("/recompute", s.controllers.weight.RecomputeGroup)
	})
	router.Route("/weights", func(r chi.Router) {
		r.Put("/", s.controllers.weight.SetWeight)
		r.Delete("/", s.controllers.weight.RemoveWeight)
	})
}

func (s *HTTPServer) registerThresholdRoutes(router *chi.Mux) {
	router.Route("/thresholds", func(r chi.Router) {
		r.Get("/", s.controllers.threshold.GetThresholds)
		r.Post("/", s.controllers.threshold.SetThresholds)
		r.Post("/reset", s.controllers.threshold.ResetThresholds)
	})
}

func (s *HTTPServer) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		s.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration,
			"remoteAddr", r.RemoteAddr,
		)
	})
}

func initializeRepositories(db *gorm.DB) *repositoriesRegistry {
	return &repositoriesRegistry{
		project: repository.NewProjectRepository(db),
		metric:  repository.NewMetricRepository(db),
		weight:  repository.NewWeightRepository(db),
		group:   repository.NewGroupRepository(db),
	}
}

type repositoriesRegistry struct {
	project *repository.ProjectRepository
	metric  *repository.MetricRepository
	weight  *repository.WeightRepository
	group   *repository.GroupRepository
}

func initializeServices(repos *repositoriesRegistry, scoringConfig services.ScoringConfig, logger *slog.Logger) *servicesRegistry {
	weight := services.NewWeightService(repos.weight, repos.metric, repos.group, logger)
	return &servicesRegistry{
		imports:    services.NewImportService(repos.project, logger),
		scoring:    services.NewScoringService(repos.project, repos.metric, repos.weight, repos.group, scoringConfig, logger),
		metric:     services.NewMetricService(repos.metric, repos.weight, repos.group, weight, logger),
		weight:     weight,
		thresholds: services.NewThresholdStore(),
	}
}

type servicesRegistry struct {
	imports    *services.ImportService
	scoring    *services.ScoringService
	metric     *services.MetricService
	weight     *services.WeightService
	thresholds *services.ThresholdStore
}

func initializeControllers(svcs *servicesRegistry, logger *slog.Logger) *controllersRegistry {
	validate := NewValidator()
	return &controllersRegistry{
		project:     NewProjectController(svcs.imports, svcs.scoring, svcs.thresholds, validate, logger),
		leaderboard: NewLeaderboardController(svcs.scoring, svcs.thresholds, logger),
		metric:      NewMetricController(svcs.metric, validate, logger),
		weight:      NewWeightController(svcs.weight, validate, logger),
		threshold:   NewThresholdController(svcs.thresholds, validate, logger),
	}
}

func normalizeAddress(address string) string {
	if address == "" {
		return defaultAddress
	}
	return address
}

func normalizePort(port int) int {
	if port == 0 {
		return defaultPort
	}
	return port
}
