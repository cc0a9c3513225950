package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hoopsight/internal/config"
	"hoopsight/internal/dataset"
	apierrors "hoopsight/internal/errors"
	"hoopsight/internal/files"
	"hoopsight/internal/infrastructure"
	mw "hoopsight/internal/middleware"
	"hoopsight/internal/services"
	api "hoopsight/internal/transport/http"
	"hoopsight/internal/validation"
	"hoopsight/pkg/contracts"
)

// AppName is the human-readable service name used in startup logs.
const AppName = "HoopSight"

// collectInterval is how often the runtime collector samples the process.
const collectInterval = 30 * time.Second

// App owns every long-lived component: configuration, the dataset store,
// the services built on top of it and the HTTP server. Its lifecycle
// methods start and stop them as one unit.
type App struct {
	Config *config.Config
	Paths  *config.Paths
	Router *chi.Mux
	Server *http.Server

	Store            *dataset.Store
	DashboardService *services.DashboardService
	ExportService    *services.ExportService
	HealthService    *services.HealthService

	Logger     *slog.Logger
	Telemetry  *infrastructure.Telemetry
	Metrics    *infrastructure.AppMetrics
	Collector  *infrastructure.RuntimeCollector
	FrontendFS fs.FS
}

// New wires up a ready-to-run App. The dashboard frontend comes in as a
// filesystem so the binary can embed its own assets; pass nil to run the
// API without a UI. Dataset files are validated here but not loaded; the
// first load happens in Start.
func New(frontendFS fs.FS) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.SetupLogging(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.Info("booting",
		slog.String("service", AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", cfg.Server.Port))

	paths, err := config.NewPaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	if err := paths.EnsureWritable(); err != nil {
		return nil, fmt.Errorf("prepare directories: %w", err)
	}
	logger.Info("directory layout",
		slog.String("data", paths.DataDir),
		slog.String("reports", paths.ReportsDir),
		slog.String("logs", paths.LogsDir))

	// Refuse to boot on an incomplete dataset. Every input is checked up
	// front so the operator sees all problems at once instead of one per
	// restart.
	if err := validation.NewPreflight(logger).ValidateDataDir(paths.DataDir); err != nil {
		return nil, fmt.Errorf("dataset validation: %w", err)
	}

	telOpts := infrastructure.TelemetryOptionsFromConfig(cfg.Telemetry)
	if !cfg.Telemetry.Enabled {
		telOpts.Tracing = false
		telOpts.Metrics = false
	}
	telemetry, err := infrastructure.NewTelemetry(telOpts, logger)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	a := &App{
		Config:     cfg,
		Paths:      paths,
		Logger:     logger,
		Telemetry:  telemetry,
		FrontendFS: frontendFS,
	}

	if err := a.buildServices(); err != nil {
		return nil, fmt.Errorf("wire services: %w", err)
	}

	a.Router = a.buildRouter()
	a.Server = newHTTPServer(cfg.Server, a.Router)

	return a, nil
}

// buildServices constructs the dataset store and the services on top of it.
func (a *App) buildServices() error {
	if a.Telemetry.Meter != nil {
		metrics, err := infrastructure.NewAppMetrics(a.Telemetry.Meter)
		if err != nil {
			return fmt.Errorf("create app metrics: %w", err)
		}
		a.Metrics = metrics

		collector, err := infrastructure.NewRuntimeCollector(a.Telemetry.Meter, collectInterval)
		if err != nil {
			return fmt.Errorf("create runtime collector: %w", err)
		}
		a.Collector = collector
	}

	loader := dataset.NewLoader(a.Paths.DataDir, a.Logger)
	a.Store = dataset.NewStore(loader, a.Logger)

	discovery := files.NewDiscovery(a.Paths)

	a.DashboardService = services.NewDashboardService(a.Store, a.Logger)
	a.ExportService = services.NewExportService(a.Store, discovery, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(a.Store, discovery, a.Collector, a.Logger)

	return nil
}

// buildRouter assembles the HTTP routing tree. Cross-cutting middleware is
// applied globally; request logging and rate limiting are applied per
// subtree so every request is logged exactly once and health probes are
// never throttled.
func (a *App) buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Use(mw.RequestID)
	router.Use(mw.RealIP)

	if a.Telemetry.Tracer != nil {
		router.Use(mw.NewTracing(a.Telemetry, a.Metrics).Handler)
	}

	router.Use(mw.Recover(a.Logger))
	router.Use(mw.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		router.Use(mw.CORS(a.corsPolicy()))
	}

	a.mountAPI(router)

	// Prometheus scrapes stay outside the API group: no rate limiting, no
	// request logging.
	if a.Telemetry.PromHandler != nil {
		router.Handle("/metrics", a.Telemetry.PromHandler)
	}

	if a.FrontendFS != nil {
		a.mountFrontend(router)
	}

	return router
}

// mountAPI hangs the JSON API off /api. API requests are logged by the
// access logger at a level scaled to the response status, and unmatched
// paths get problem documents instead of chi's plain 404.
func (a *App) mountAPI(router chi.Router) {
	router.Route("/api", func(r chi.Router) {
		errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)

		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(apierrors.NewAccessLogger(errorHandler, a.Logger).Handler)

		// Innermost recovery, so an API panic surfaces as a problem
		// document and the access log still records the 500.
		r.Use(apierrors.Recovery(errorHandler))

		// Health and version endpoints bypass rate limiting so load
		// balancer probes keep working while clients hammer the API.
		health := api.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", health.Routes())
		r.Get("/version", health.Version)

		r.Group(func(r chi.Router) {
			r.Use(mw.Timeout(a.Config.Server.RequestTimeout))

			if limits := a.Config.Security.RateLimit; limits.Enabled {
				r.Use(mw.RateLimit(limits.RPS, limits.Burst, a.Logger))
			}

			validate := mw.NewValidator(errorHandler)
			params := mw.NewQueryValidator(errorHandler)

			dashboard := api.NewDashboardHandler(a.DashboardService, validate, a.Logger, errorHandler)
			r.Mount("/dashboard", dashboard.Routes())

			export := api.NewExportHandler(a.ExportService, validate, params, a.Logger, errorHandler)
			r.Mount("/export", export.Routes())
			r.Get("/reports", export.ListReports)
		})
	})
}

// mountFrontend serves the embedded dashboard assets. Unmatched paths fall
// back to index.html so client-side routes survive a page reload.
func (a *App) mountFrontend(router chi.Router) {
	static := api.NewStaticHandler(a.FrontendFS, a.Logger)

	router.Group(func(r chi.Router) {
		r.Use(mw.RequestLogger(a.Logger))
		r.Use(mw.Compress(5))
		r.Get("/*", static.ServeAssets)
	})
}

// corsPolicy builds the CORS policy from configuration. Content-Disposition
// is exposed so browser clients can read export filenames.
func (a *App) corsPolicy() mw.CORSPolicy {
	return mw.CORSPolicy{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		Logger:         a.Logger,
	}
}

func newHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        handler,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}
}

// Start loads the dataset and brings up the HTTP listener. A dataset that
// fails to load is fatal: a dashboard with no data has nothing to serve.
// Listener errors after startup cancel the context so Run can shut down
// cleanly.
func (a *App) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting",
		slog.String("service", AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("data_dir", a.Paths.DataDir))

	loadStart := time.Now()
	snap, err := a.Store.Snapshot(ctx)
	infrastructure.RecordDatasetLoad(ctx, a.Metrics, time.Since(loadStart), err)
	if err != nil {
		return fmt.Errorf("dataset load: %w", err)
	}

	infrastructure.RecordDatasetRows(ctx, a.Metrics, "games", int64(len(snap.Games)), int64(snap.DroppedGames))
	infrastructure.RecordDatasetRows(ctx, a.Metrics, "games_details", int64(len(snap.Lines)), int64(snap.DroppedLines))
	infrastructure.RecordDatasetRows(ctx, a.Metrics, "players", int64(len(snap.Players)), 0)
	infrastructure.RecordDatasetRows(ctx, a.Metrics, "teams", int64(len(snap.Teams)), 0)
	infrastructure.RecordDatasetRows(ctx, a.Metrics, "ranking", int64(len(snap.Standings)), 0)

	if a.Collector != nil {
		go a.Collector.Start(ctx)
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "http server failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "ready",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)),
		slog.Int("games", len(snap.Games)),
		slog.Int("box_score_lines", len(snap.Lines)))

	return nil
}

// Stop drains the HTTP server and releases telemetry and the log file.
func (a *App) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("drain http server: %w", err)
	}

	if a.Collector != nil {
		a.Collector.Stop()
	}

	if a.Telemetry != nil {
		if err := a.Telemetry.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run starts the app and blocks until an interrupt arrives or the server
// dies, then shuts down gracefully. The root context carries a
// process-level trace ID so startup and shutdown logs correlate.
func (a *App) Run() error {
	root := infrastructure.EnsureTraceID(context.Background())

	sigCtx, stop := signal.NotifyContext(root, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	if sigCtx.Err() != nil {
		a.Logger.InfoContext(root, "interrupt received")
	} else {
		a.Logger.WarnContext(root, "server exited before interrupt")
	}

	// Shutdown gets the uncancelled root so the grace period is honored.
	return a.Stop(root)
}
