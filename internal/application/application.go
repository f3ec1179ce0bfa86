package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/license-counter/internal/api"
	"github.com/eugenenazirov/license-counter/internal/config"
	"github.com/eugenenazirov/license-counter/internal/installation"
	"github.com/eugenenazirov/license-counter/internal/license"
	"github.com/eugenenazirov/license-counter/internal/report"
	"github.com/eugenenazirov/license-counter/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	cfg      config.Config
	storage  storage.Storage
	analyser *report.Analyser
	logger   *zap.Logger
	server   *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if err := store.SetApplicationID(cfg.ApplicationID); err != nil {
		return nil, fmt.Errorf("failed to apply application id: %w", err)
	}

	analyser := report.NewAnalyser(report.NewLoader(), license.New(), logger)
	handler := api.NewHandler(analyser, store, api.WithMaxReportBytes(cfg.MaxReportBytes))
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		cfg:      cfg,
		storage:  store,
		analyser: analyser,
		logger:   logger,
		server:   NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler routes API and metrics traffic to apiHandler and answers
// everything else with 404, except for a short plain-text banner at "/".
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/metrics", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, "license-counter: POST a CSV installation report to /api/licenses")
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Count analyses the report at path for the configured application.
func (a *App) Count(ctx context.Context, path string) (report.Result, error) {
	applicationID, err := a.storage.GetApplicationID()
	if err != nil {
		return report.Result{}, err
	}

	result, err := a.analyser.AnalyseFile(ctx, path, installation.NewApplicationFilter(applicationID))
	if err != nil {
		return report.Result{}, fmt.Errorf("analyse %s: %w", path, err)
	}

	a.logger.Info("report analysed",
		zap.String("report", path),
		zap.Int("application_id", applicationID),
		zap.Int("licenses", result.Licenses),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.Int("application_id", a.cfg.ApplicationID),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
