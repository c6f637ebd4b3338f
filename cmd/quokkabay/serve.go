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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quokkabay/quokkabay/internal/bootstrap"
	"github.com/quokkabay/quokkabay/internal/config"
	"github.com/quokkabay/quokkabay/internal/infra/cache"
	"github.com/quokkabay/quokkabay/internal/infra/db"
	"github.com/quokkabay/quokkabay/internal/infra/identity"
	mq "github.com/quokkabay/quokkabay/internal/infra/queue"
	"github.com/quokkabay/quokkabay/internal/modules/handler"
	"github.com/quokkabay/quokkabay/internal/pkg/validation"
	"github.com/quokkabay/quokkabay/internal/router"
	"github.com/quokkabay/quokkabay/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	inj := bootstrap.BuildContainer()

	cfg, err := do.Invoke[*config.Config](inj)
	if err != nil {
		return err
	}
	log, err := do.Invoke[*zap.Logger](inj)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tp, err := telemetry.SetupTracing(cfg, version)
	if err != nil {
		return err
	}
	if tp != nil {
		log.Info("tracing enabled", zap.String("endpoint", cfg.Telemetry.OtlpEndpoint))
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	if err := telemetry.InitMetrics(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	if err := validation.RegisterGin(); err != nil {
		return err
	}

	gdb, err := do.Invoke[*gorm.DB](inj)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() { _ = db.Close(gdb) }()

	rdb, err := do.Invoke[*redis.Client](inj)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if rdb != nil {
		defer func() { _ = cache.Close(rdb) }()
	}

	if tp != nil {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Warn("gorm tracing plugin", zap.Error(err))
		}
		if rdb != nil {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				log.Warn("redis tracing plugin", zap.Error(err))
			}
		}
	}

	pub, err := do.Invoke[mq.EventPublisher](inj)
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	if p, ok := pub.(*mq.Publisher); ok {
		defer func() {
			_ = p.Close()
			if conn, err := do.Invoke[*amqp.Connection](inj); err == nil {
				_ = conn.Close()
			}
		}()
	}

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Log:             log,
		Resolver:        do.MustInvoke[identity.Resolver](inj),
		Gatherer:        prometheus.DefaultGatherer,
		SurveyHandler:   do.MustInvoke[*handler.SurveyHandler](inj),
		FavoriteHandler: do.MustInvoke[*handler.FavoriteHandler](inj),
		AuthHandler:     do.MustInvoke[*handler.AuthHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return inj.Shutdown()
}
