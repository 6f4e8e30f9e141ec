// Package main is the entry point for the Finance Dashboard API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/infra/cache"
	"github.com/finance-tracker/dashboard/internal/infra/db"
	"github.com/finance-tracker/dashboard/internal/infra/dependency"
	"github.com/finance-tracker/dashboard/internal/infra/server/router"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/dashboard/internal/integration/messaging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.SlogLevel(),
	}))
	slog.SetDefault(logger)

	instanceID := newInstanceID()

	slog.Info("Starting Finance Dashboard API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"instance", instanceID,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		engine  *gin.Engine
		workers []func(context.Context) error
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, serving health endpoint only", "error", err)
		health := controller.NewHealthController(func() bool { return false }, nil)
		engine = router.NewRouter(health, nil, nil, nil, nil, nil, nil).Setup(cfg.Server.Environment)
	} else {
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		if err := database.Migrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		infra := dependency.Infrastructure{InstanceID: instanceID}

		if redisConn := connectRedis(cfg.Redis.URL); redisConn != nil {
			defer redisConn.Close()
			infra.Redis = redisConn.Client()
		}

		broker := connectBroker(cfg.AMQP, instanceID)
		if broker != nil {
			defer broker.Close()
			infra.Publisher = broker
		}

		injector := dependency.NewInjector(cfg, database.DB(), infra)
		engine = injector.Router.Setup(cfg.Server.Environment)

		if broker != nil {
			workers = append(workers, func(ctx context.Context) error {
				consumeRecordChanges(ctx, broker, injector)
				return nil
			})
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	for _, worker := range workers {
		worker := worker
		g.Go(func() error { return worker(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// newInstanceID names this process in record change events and its broker queue.
func newInstanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "api"
	}
	return host + "-" + uuid.NewString()[:8]
}

func connectRedis(url string) *cache.Redis {
	if url == "" {
		slog.Info("Redis not configured, snapshot cache disabled")
		return nil
	}
	conn, err := cache.NewRedisConnection(url)
	if err != nil {
		slog.Warn("Redis connection failed, snapshot cache disabled", "error", err)
		return nil
	}
	return conn
}

func connectBroker(cfg config.AMQPConfig, instanceID string) *messaging.Client {
	if cfg.URL == "" {
		slog.Info("AMQP not configured, snapshot invalidation stays local")
		return nil
	}
	client, err := messaging.NewClient(cfg.URL, cfg.Exchange, cfg.Queue+"."+instanceID)
	if err != nil {
		slog.Warn("AMQP connection failed, snapshot invalidation stays local", "error", err)
		return nil
	}
	slog.Info("AMQP connection established", "exchange", cfg.Exchange, "queue", client.QueueName())
	return client
}

// consumeRecordChanges drops local snapshots when another instance changes a record.
func consumeRecordChanges(ctx context.Context, broker *messaging.Client, injector *dependency.Injector) {
	err := broker.Consume(ctx, func(ctx context.Context, msg *messaging.RecordChangedMessage) error {
		return injector.RecordSource.HandleRecordChange(ctx, msg.ToChange())
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Record change consumer stopped", "error", err)
	}
}
