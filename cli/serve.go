package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sentiment-analysis/config"
	"sentiment-analysis/database"
	"sentiment-analysis/handlers"
	"sentiment-analysis/live"
	"sentiment-analysis/logging"
	"sentiment-analysis/predictor"
	"sentiment-analysis/report"
	"sentiment-analysis/service"
	"sentiment-analysis/watch"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		port    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if noWatch {
				cfg.WatchSources = false
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (PORT)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when source files change")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	hub := live.NewHub()
	defer hub.Stop()

	svc := service.New(service.Options{
		DataDir:      cfg.DataDir,
		Manifest:     m,
		Fallback:     cfg.UseFallbackData,
		SnapshotPath: cfg.SnapshotPath,
		Store:        database.NewStore(db),
		Predictor:    loadPredictor(cfg),
		OnReload: func(at time.Time, o report.Overview) {
			if err := hub.Broadcast(live.NewReloadMessage(at, o.Applications, o.TotalReviews)); err != nil {
				logging.WithError(err).Warn("Failed to notify live clients")
			}
		},
	})
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	if cfg.WatchSources {
		startWatcher(ctx, svc, cfg.WatchDebounce)
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := handlers.NewRouter(handlers.New(svc, hub))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("Starting sentiment dashboard", "port", cfg.Port,
			"dashboard", fmt.Sprintf("http://localhost:%s/dashboard", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.Logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadPredictor returns nil when the artifacts are missing or unusable; the
// dashboard still serves aggregates and prediction reports ArtifactLoad.
func loadPredictor(cfg *config.Config) *predictor.Predictor {
	if !cfg.PredictionEnabled() {
		logging.Logger.Info("Prediction disabled: no model artifacts configured")
		return nil
	}
	vec, clf, err := predictor.LoadArtifacts(cfg.VectorizerPath, cfg.ClassifierPath)
	if err != nil {
		logging.WithError(err).Warn("Prediction disabled: model artifacts not loaded")
		return nil
	}
	p, err := predictor.New(vec, clf)
	if err != nil {
		logging.WithError(err).Warn("Prediction disabled")
		return nil
	}
	logging.Logger.Info("Model artifacts loaded", "vectorizer", cfg.VectorizerPath, "classifier", cfg.ClassifierPath)
	return p
}

func startWatcher(ctx context.Context, svc *service.Service, debounce time.Duration) {
	w, err := watch.NewSourceWatcher(svc.SourcePaths(), debounce, func(ev watch.ChangeEvent) {
		svc.OnSourceChange(ctx, ev.Path)
	})
	if err != nil {
		logging.WithError(err).Warn("Source watching disabled")
		return
	}
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.WithError(err).Error("Source watcher stopped")
		}
	}()
}
