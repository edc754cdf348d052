package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"wholesaleDelivery/internal/app"
	"wholesaleDelivery/internal/config"
	"wholesaleDelivery/internal/db"
	grpcserver "wholesaleDelivery/internal/grpc"
	"wholesaleDelivery/internal/httpapi"
	"wholesaleDelivery/internal/logging"
	"wholesaleDelivery/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		var ce *config.ConfigurationError
		if errors.As(err, &ce) {
			slog.Error("refusing to start", "key", ce.Key, "reason", ce.Reason)
		} else {
			slog.Error("load config", "error", err)
		}
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		slog.Error("build logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.String())
	if cfg.Auth.SecretGenerated {
		logger.Warn("JWT_SECRET not set; tokens will not survive a restart")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Error("close db", "error", err)
		}
	}()

	a, err := app.New(cfg, d, logger, metrics.New())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedDemoData {
		if err := a.Seed(ctx); err != nil {
			return err
		}
	}

	shutdownGRPC, err := grpcserver.StartGRPC(cfg.GRPC.Address, a)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpapi.NewRouter(a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "address", cfg.HTTP.Address)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(httpSrv.Shutdown(sctx), shutdownGRPC(sctx))
	})
	return g.Wait()
}
