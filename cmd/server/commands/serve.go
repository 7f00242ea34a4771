package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/metrics"
	"github.com/corpsite/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if created, err := db.EnsureAdmin(rt.db, rt.cfg.SuperRootUserName, rt.cfg.SuperRootPassword, rt.cfg.SuperRootEmail); err != nil {
		rt.logger.Warn("ensure bootstrap admin failed", zap.Error(err))
	} else if created {
		rt.logger.Info("bootstrap admin created", zap.String("username", rt.cfg.SuperRootUserName))
	}

	gin.SetMode(rt.cfg.GinMode)

	collector := metrics.New()
	if sqlDB, err := rt.db.DB(); err == nil {
		if err := collector.RegisterDB(sqlDB, rt.cfg.DatabaseDriver); err != nil {
			rt.logger.Warn("register db metrics failed", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              rt.cfg.ListenAddr,
		Handler:           router.SetupRouter(router.Deps{Config: rt.cfg, DB: rt.db, Logger: rt.logger, Metrics: collector}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	rt.logger.Info("server stopped")
	return nil
}
