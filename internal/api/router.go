package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/credalab/credence/internal/api/handlers"
	mw "github.com/credalab/credence/internal/api/middleware"
	"github.com/credalab/credence/internal/buildconfig"
	"github.com/credalab/credence/internal/config"
	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/service"
	"github.com/credalab/credence/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router and background services for lifecycle management.
type App struct {
	Router   *chi.Mux
	Expirer  *service.ExpirerService
	Runner   *service.RunnerService
	Forecast *service.ForecastService

	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, frame *domain.Frame, hypotheses []domain.Hypothesis, logger *zap.Logger) (*App, error) {
	// Stores
	sensorStore := store.NewSensorStore(db)
	runStore := store.NewRunStore(db)
	watchStore := store.NewWatchStore(db)
	snapshotStore := store.NewSnapshotStore(db)

	// Services
	evidenceSvc := service.NewEvidenceService(frame, config.EvidenceTTL(), logger)
	forecastSvc := service.NewForecastService(watchStore, snapshotStore, frame, logger)
	fusionSvc, err := service.NewFusionService(
		evidenceSvc, forecastSvc, runStore, frame,
		config.FusionCapacity(), config.FusionStrategy(), logger,
	)
	if err != nil {
		return nil, err
	}
	expirerSvc := service.NewExpirerService(evidenceSvc, logger)
	runnerSvc := service.NewRunnerService(fusionSvc, forecastSvc, logger)
	runnerSvc.SetInterval(config.FusionInterval())
	runnerSvc.SetSnapshotInterval(config.SnapshotInterval())

	// Handlers
	sensorHandler := handlers.NewSensorHandler(sensorStore)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceSvc)
	beliefHandler := handlers.NewBeliefHandler(fusionSvc)
	fusionHandler := handlers.NewFusionHandler(fusionSvc)
	watchHandler := handlers.NewWatchHandler(forecastSvc)
	frameHandler := handlers.NewFrameHandler(frame, hypotheses)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Expirer:   expirerSvc,
		Runner:    runnerSvc,
		Forecast:  forecastSvc,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health (no auth)
	r.Get("/health", healthHandler(db))

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Sensor registration (no auth, bootstrap endpoint that mints the key)
	r.Post("/v1/sensors", sensorHandler.Create)

	r.Route("/v1", func(r chi.Router) {
		// Frame and fleet description
		r.Get("/frame", frameHandler.Get)
		r.Get("/sensors", sensorHandler.List)

		// Evidence: submission authenticates as the reporting sensor
		r.Group(func(r chi.Router) {
			r.Use(mw.SensorAuth(sensorStore))
			r.Post("/evidence", evidenceHandler.Submit)
		})
		r.Get("/evidence", evidenceHandler.List)

		// Fused beliefs
		r.Get("/beliefs", beliefHandler.Query)
		r.Route("/fusion", func(r chi.Router) {
			r.Post("/run", fusionHandler.Run)
			r.Get("/runs", fusionHandler.ListRuns)
		})

		// Watches and forecasts
		r.Route("/watches", func(r chi.Router) {
			r.Post("/", watchHandler.Create)
			r.Get("/", watchHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", watchHandler.Delete)
				r.Get("/forecast", watchHandler.GetForecast)
				r.Get("/similar", watchHandler.GetSimilar)
			})
		})
	})

	return app, nil
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy the domain interfaces at compile time.
var (
	_ domain.SensorStore   = (*store.SensorStore)(nil)
	_ domain.RunStore      = (*store.RunStore)(nil)
	_ domain.WatchStore    = (*store.WatchStore)(nil)
	_ domain.SnapshotStore = (*store.SnapshotStore)(nil)
)
