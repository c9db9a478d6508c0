package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/workboard-api/internal/catalog"
	"github.com/yukikurage/workboard-api/internal/config"
	"github.com/yukikurage/workboard-api/internal/export"
	"github.com/yukikurage/workboard-api/internal/handlers"
	"github.com/yukikurage/workboard-api/internal/logging"
	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/repository"
	"github.com/yukikurage/workboard-api/internal/seed"
	"github.com/yukikurage/workboard-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

// newApp builds the seeded in-memory workspace behind the router
func newApp(cfg *config.Config) (handlers.Dependencies, error) {
	taskRepo := repository.NewTaskRepository()
	timeLogRepo := repository.NewTimeLogRepository()
	if err := seed.Load(taskRepo, timeLogRepo); err != nil {
		return handlers.Dependencies{}, err
	}

	tasks := services.NewTaskService(taskRepo, repository.NewUserRepository(seed.Users()))
	if _, err := tasks.GetUser(cfg.DefaultUserID); err != nil {
		return handlers.Dependencies{}, fmt.Errorf("default user %q: %w", cfg.DefaultUserID, err)
	}

	resolver := catalog.NewResolver(cfg.EmbedBaseURL)
	reports, err := catalog.New(resolver, catalog.DefaultDefinitions())
	if err != nil {
		return handlers.Dependencies{}, fmt.Errorf("failed to build report catalog: %w", err)
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	// Configure session options based on environment
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})

	return handlers.Dependencies{
		Tasks:         tasks,
		TimeLogs:      services.NewTimeLogService(timeLogRepo, tasks),
		Catalog:       reports,
		Resolver:      resolver,
		SessionStore:  store,
		DefaultUserID: cfg.DefaultUserID,
	}, nil
}

// serve runs the API until ctx is cancelled or the process is interrupted
func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	deps, err := newApp(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.WithFields(logrus.Fields{
			"addr":       srv.Addr,
			"embed_base": deps.Resolver.Base(),
			"reports":    deps.Catalog.Len(),
		}).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func writeTimesheet(cmd *cobra.Command, format export.Format, entries []models.TimeLogEntry) error {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = format.Filename(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := exporter.Export(f, export.NewTimesheet(entries)); err != nil {
		return fmt.Errorf("failed to export timesheet: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(entries), path)
	return nil
}
