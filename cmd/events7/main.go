package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/events7/events7-api/internal/admission"
	"github.com/events7/events7-api/internal/events/application"
	"github.com/events7/events7-api/internal/events/domain"
	"github.com/events7/events7-api/internal/events/infrastructure/messaging"
	"github.com/events7/events7-api/internal/events/infrastructure/persistence"
	"github.com/events7/events7-api/internal/events/infrastructure/persistence/postgres"
	redisrepo "github.com/events7/events7-api/internal/events/infrastructure/persistence/redis"
	httpserver "github.com/events7/events7-api/internal/events/interfaces/http"
	"github.com/events7/events7-api/pkg/cache"
	"github.com/events7/events7-api/pkg/config"
	"github.com/events7/events7-api/pkg/db"
	"github.com/events7/events7-api/pkg/logger"
	"github.com/events7/events7-api/pkg/metrics"
	"github.com/events7/events7-api/pkg/middleware"
)

var configPath = flag.String("config", "configs/config.toml", "config file path")

func main() {
	flag.Parse()

	var cfg config.Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	slog.SetDefault(log)

	metricsImpl := metrics.New(cfg.Server.Name)

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Environment == "dev" {
		if err := gdb.AutoMigrate(&postgres.EventPO{}); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	var repo domain.EventRepository = postgres.NewGormEventRepository(gdb)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewClient(cfg.Redis.Addr)
		if err != nil {
			slog.Error("failed to init redis, continuing without cache", "error", err)
		} else {
			repo = persistence.NewCompositeEventRepository(repo, redisrepo.NewEventCache(redisClient))
		}
	}

	publisher := messaging.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Topic != "" {
		publisher = messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	eventService := application.NewEventService(repo, publisher, log)

	guard := admission.NewGuard(admission.Config{
		GeoBaseURL:     cfg.Admission.GeoBaseURL,
		PolicyURL:      cfg.Admission.PolicyURL,
		PolicyUsername: cfg.Admission.PolicyUsername,
		PolicyPassword: cfg.Admission.PolicyPassword,
		TestIPOverride: cfg.Admission.TestIPOverride,
		Timeout:        cfg.Admission.Timeout,
	}, log)

	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging(log))
	r.Use(metricsImpl.GinMiddleware())
	r.Use(cors.Default())

	handler := httpserver.NewEventHandler(eventService, guard, metricsImpl, log)
	handler.RegisterRoutes(r.Group(""))
	handler.RegisterRoutes(r.Group("/v1"))

	g, ctx := errgroup.WithContext(context.Background())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	if cfg.Metrics.Enabled {
		g.Go(func() error {
			return metricsImpl.ExposeHTTP(cfg.Metrics.Port)
		})
	}

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
