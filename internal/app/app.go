package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/internal/config"
	"github.com/you/elearnauth/internal/infrastructure/database"
	"github.com/you/elearnauth/internal/logging"
)

const shutdownGrace = 10 * time.Second

// Run serves until ctx is cancelled, then drains in-flight requests
func Run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := database.Ping(ctx, c.RedisClient, 5*time.Second); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
