// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	nuts "github.com/vaudience/go-nuts"

	"github.com/agrosense/agrohub/api"
	"github.com/agrosense/agrohub/internal/cache"
	"github.com/agrosense/agrohub/internal/config"
	"github.com/agrosense/agrohub/internal/database"
	"github.com/agrosense/agrohub/internal/hubservice"
	"github.com/agrosense/agrohub/internal/monitoring"
	"github.com/agrosense/agrohub/internal/reports"
	"github.com/agrosense/agrohub/internal/repository/postgres"
	"github.com/agrosense/agrohub/internal/repository/timescale"
	"github.com/agrosense/agrohub/internal/scheduler"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	scheduler  *scheduler.Scheduler
	monitoring *monitoring.Service
	db         database.DB
	cache      *cache.Cache
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start wires all services and begins listening for requests
func (s *Server) Start() error {
	if err := s.initialize(); err != nil {
		return err
	}

	s.monitoring = monitoring.NewService(monitoring.Config{
		PrometheusEndpoint: s.config.Monitoring.PrometheusEndpoint,
		LokiEndpoint:       s.config.Monitoring.LokiEndpoint,
	})

	if s.config.Reports.JobEnabled {
		s.scheduler = scheduler.New(s.hubservice.Reports, s.config.Reports.JobInterval)
		s.setupAggregationHandlers()
		s.scheduler.Start()
	}

	router := api.NewRouter(s.hubservice, s.config.Reports.Timezone)
	router.SetHealthCheck(s.handleHealth())
	router.SetMetrics(s.handleMetrics())
	s.srv.Handler = router.Handler()

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// initialize connects storage and builds the hub service
func (s *Server) initialize() error {
	db, err := database.NewTimescaleDB(s.config.Database.TimescaleDB)
	if err != nil {
		return fmt.Errorf("failed to connect to TimescaleDB: %w", err)
	}
	s.db = db

	readingsRepo, err := timescale.NewReadingRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize readings repository: %w", err)
	}
	hourlyRepo, err := timescale.NewHourlyAggregateRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize hourly aggregate repository: %w", err)
	}
	devicesRepo, err := postgres.NewDeviceRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize device repository: %w", err)
	}

	reportCache, err := cache.New(s.config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.cache = reportCache

	reportsService := reports.New(
		readingsRepo,
		hourlyRepo,
		reportCache,
		s.config.Reports.Timezone,
		s.config.Reports.MaxRangeDays,
	)

	s.hubservice = hubservice.New(devicesRepo, readingsRepo, hourlyRepo, reportsService)
	return s.hubservice.Validate()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.cache.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing cache: %v", err)
	}
	if err := s.db.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing database: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := s.db.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `","version":"` + nuts.GetVersion() + `"}`))
	}
}

// handleMetrics returns a placeholder metrics handler
func (s *Server) handleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}

func (s *Server) setupAggregationHandlers() {
	s.scheduler.OnAggregation("aggregation.completed", func(hour string) {
		s.monitoring.RecordEvent("hourly_aggregation", map[string]string{
			"hour": hour,
		})
	})
	s.scheduler.OnAggregation("aggregation.failed", func(hour string) {
		s.monitoring.RecordEvent("hourly_aggregation_failure", map[string]string{
			"hour": hour,
		})
	})
}
