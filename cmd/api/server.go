package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookstore-graphql/internal/config"
	"bookstore-graphql/pkg/container"
	"bookstore-graphql/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Serve builds the container, starts the HTTP server and blocks until
// SIGINT/SIGTERM, then drains in-flight requests.
func Serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer appContainer.Cleanup()

	// ========================================
	// 2. SETUP ROUTER AND SERVER
	// ========================================
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           SetupRouter(appContainer),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// ========================================
	// 3. RUN UNTIL SIGNALLED
	// ========================================
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", map[string]interface{}{
			"addr":       srv.Addr,
			"env":        cfg.App.Environment,
			"db_driver":  cfg.Database.Driver,
			"doc_driver": cfg.Document.Driver,
			"playground": cfg.App.Playground,
		})

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown timed out", err)
			return fmt.Errorf("forced shutdown: %w", err)
		}
		logger.Debug("Server exited gracefully")
		return nil
	})

	return g.Wait()
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.App.ShutdownTimeout > 0 {
		return cfg.App.ShutdownTimeout
	}
	return 10 * time.Second
}
