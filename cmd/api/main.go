package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qlcc/docs"
	"qlcc/internal/attachment"
	"qlcc/internal/config"
	"qlcc/internal/database"
	"qlcc/internal/database/migration"
	handlers "qlcc/internal/http/handler"
	"qlcc/internal/http/middleware"
	"qlcc/internal/logging"
	"qlcc/internal/otel"
	"qlcc/internal/remote"
	"qlcc/internal/repository"
	"qlcc/internal/repository/memory"
	"qlcc/internal/repository/postgres"
	"qlcc/internal/storage"
	"qlcc/internal/workspace"
)

// @title QLCC back-office API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	var (
		records repository.RecordRepository
		checks  []handlers.Check
	)
	if cfg.Database.Enabled() {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if cfg.Database.Migrate {
			if err := migration.Up(ctx, db, logger, cfg.Database.Host); err != nil {
				return err
			}
		}
		records = postgres.NewRecordPostgres(db)
		checks = append(checks, handlers.Check{Name: "database", Ping: db.PingContext})
	} else {
		logger.Warn("DB_HOST is not set, records are kept in memory")
		records = memory.NewRecordMemory()
	}

	var objects storage.Storage
	if cfg.MinIO.Enabled() {
		objects, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		checks = append(checks, handlers.Check{Name: "storage", Ping: objects.Ping})
	} else {
		logger.Warn("MINIO_ENDPOINT is not set, document uploads are disabled")
	}

	var upstream *remote.Client
	if cfg.Upstream.BaseURL != "" {
		upstream = remote.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, remote.StaticToken(cfg.Upstream.Token), logger)
	}

	previews := attachment.NewPreviewRegistry(cfg.PublicURL, cfg.Workspace.PreviewMax, cfg.Workspace.PreviewTTL, logger)
	registry := workspace.NewRegistry(workspace.FactoryFor(workspace.Deps{
		Records:    records,
		Upstream:   upstream,
		Objects:    objects,
		Previews:   previews,
		Settings:   cfg.Workspace,
		PresignTTL: cfg.MinIO.PresignTTL,
		Logger:     logger,
	}), cfg.Workspace.Max, cfg.Workspace.TTL, logger)
	defer registry.Close()

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    32 << 20,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(prom.Handler())
	app.Use("/api", middleware.NewActorResolver(cfg.Auth.JWTSecret, cfg.Auth.ActorHeader, logger).Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handlers.RegisterRoutes(app, registry, previews, checks...)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info("server listening", slog.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
