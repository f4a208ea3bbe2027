// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taghub/taghub/api"
	"github.com/taghub/taghub/internal/aggregation"
	"github.com/taghub/taghub/internal/cache"
	"github.com/taghub/taghub/internal/config"
	"github.com/taghub/taghub/internal/database"
	"github.com/taghub/taghub/internal/hubservice"
	"github.com/taghub/taghub/internal/monitoring"
	"github.com/taghub/taghub/internal/repository/postgres"
	"github.com/taghub/taghub/internal/retention"
	"github.com/taghub/taghub/internal/scheduler"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	hubservice *hubservice.HubService
	scheduler  *scheduler.Scheduler
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	s.hubservice = s.initializeHubService()
	s.monitoring = monitoring.NewService()

	// Set up the daily batch jobs
	if err := s.setupTasks(); err != nil {
		return err
	}

	// Setup router
	router := api.NewRouter(s.hubservice, s.config.API.IngestKey)
	router.SetHealthCheck(s.handleHealth())

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	s.scheduler.Start()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	s.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.db.Close(); err != nil {
		nuts.L.Errorf("[Server] Error closing database: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// setupTasks registers the aggregation and retention jobs on their schedules
func (s *Server) setupTasks() error {
	s.scheduler = scheduler.New()

	aggregationTask := aggregation.New(s.hubservice.Tags, s.hubservice.Readings, s.hubservice.Aggregates)
	retentionTask := retention.New(s.hubservice, s.config.RetentionHorizon())

	err := s.scheduler.Add("aggregation", s.config.Tasks.AggregationSchedule,
		func(ctx context.Context) (bool, error) {
			ok, err := aggregationTask.Run(ctx)
			if err == nil {
				s.monitoring.RecordEvent("aggregation_run", nil)
			}
			return ok, err
		})
	if err != nil {
		return err
	}

	err = s.scheduler.Add("retention", s.config.Tasks.RetentionSchedule,
		func(ctx context.Context) (bool, error) {
			ok, err := retentionTask.Run(ctx)
			if err == nil {
				s.monitoring.RecordEvent("retention_run", nil)
			}
			return ok, err
		})
	if err != nil {
		return err
	}

	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

// initializeHubService creates and configures the hub service
func (s *Server) initializeHubService() *hubservice.HubService {
	db, err := database.NewPostgresDB(s.config.Database.Postgres)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to postgres: %v", err)
	}
	s.db = db

	// Tags first, readings and aggregates reference them
	tags, err := postgres.NewTagRepository(db)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize tag repository: %v", err)
	}
	readings, err := postgres.NewReadingRepository(db)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize reading repository: %v", err)
	}
	aggregates, err := postgres.NewAggregateRepository(db)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize aggregate repository: %v", err)
	}

	var statusCache *cache.StatusCache
	if s.config.Redis.Host != "" {
		statusCache, err = cache.New(s.config.Redis, s.config.API.StatusCacheTTL)
		if err != nil {
			nuts.L.Warnf("[Server] Status cache unavailable, serving uncached: %v", err)
		}
	}

	return hubservice.New(tags, readings, aggregates, statusCache, hubservice.Options{
		BatteryLowVoltage: s.config.Sensors.BatteryLowVoltage,
	})
}
