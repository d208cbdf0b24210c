package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"complaint-desk/internal/config"
	"complaint-desk/internal/handler"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/outbox"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/service"
	"complaint-desk/internal/service/email"
)

const (
	outboxKey   = "outbox:email"
	outboxWait  = 5 * time.Second
	memoryQueue = 256
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)
	if envErr != nil {
		logger.Info().Msg("no .env file found, using environment variables")
	}
	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = config.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, report cache disabled and outbox kept in memory")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var queue outbox.Queue
	if redisClient != nil {
		queue = outbox.NewRedisQueue(redisClient, outboxKey, outboxWait)
	} else {
		queue = outbox.NewMemoryQueue(memoryQueue, outboxWait)
	}

	minioClient, err := config.NewMinIOClient(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to object storage")
	}

	mailer, err := email.NewService(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load email templates")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, queue, cfg, logger)
	handlers := handler.NewHandlers(services)

	dispatcher := outbox.NewDispatcher(queue, mailer, logger, cfg.OutboxMaxAttempts, cfg.OutboxRetryDelay)
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		dispatcher.Run(ctx)
	}()

	app := fiber.New(fiber.Config{
		AppName:      "complaint-desk",
		ErrorHandler: middleware.ErrorHandler(logger),
		BodyLimit:    bodyLimit(cfg),
	})

	app.Use(requestid.New())
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Environment != "production"}))
	app.Use(middleware.Metrics())
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateRPS, cfg.LoginRateBurst, middleware.KeyByIP())
	handlers.Register(app, services.Auth, services.Policy, loginLimiter)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("server stopped")
		}
		stop()
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}

	waitFor(dispatched, 5*time.Second, logger)
}

// bodyLimit leaves room for a full set of attachments plus the form fields.
func bodyLimit(cfg *config.Config) int {
	limit := cfg.AttachmentMaxBytes*int64(cfg.AttachmentMaxFiles) + 1<<20
	if limit < fiber.DefaultBodyLimit {
		return fiber.DefaultBodyLimit
	}
	return int(limit)
}

func waitFor(done <-chan struct{}, timeout time.Duration, logger zerolog.Logger) {
	select {
	case <-done:
	case <-time.After(timeout):
		logger.Warn().Msg("outbox dispatcher did not stop in time")
	}
}
