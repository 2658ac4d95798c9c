package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/messaging-service/internal/api/http"
	"github.com/spec-kit/messaging-service/internal/api/http/handlers"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/config"
	"github.com/spec-kit/messaging-service/internal/events"
	"github.com/spec-kit/messaging-service/internal/notify"
	"github.com/spec-kit/messaging-service/internal/observability"
	"github.com/spec-kit/messaging-service/internal/persistence"
	"github.com/spec-kit/messaging-service/internal/ratelimit"
	"github.com/spec-kit/messaging-service/internal/repository"
	"github.com/spec-kit/messaging-service/internal/service"
	"github.com/spec-kit/messaging-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if cfg.Postgres.RunMigrations && pool != nil {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	userRepo := repository.NewUserRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	publisher := notify.NewRedisPublisher(redis.Client, cfg.Notification.ChannelPrefix)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo,
		Hasher:   hasher,
		Tokens:   tokens,
		Logger:   logger,
	})
	userService := service.NewUserService(userRepo, hasher)
	messageService := service.NewMessageService(service.MessageDependencies{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		Dispatcher:       dispatcher,
		Publisher:        publisher,
		Logger:           logger,
	})
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewLimiter(redis.Client, cfg.RateLimit.LoginLimit, cfg.RateLimit.Window())
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUsersHandler(authService, userService),
		Messages:      handlers.NewMessagesHandler(messageService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Tokens:        tokens,
		Limiter:       limiter,
		Logger:        logger,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
