package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/healthhelpdesk/helpdesk-service/internal/api/http"
	"github.com/healthhelpdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/healthhelpdesk/helpdesk-service/internal/auth"
	"github.com/healthhelpdesk/helpdesk-service/internal/chatbot"
	"github.com/healthhelpdesk/helpdesk-service/internal/config"
	"github.com/healthhelpdesk/helpdesk-service/internal/events"
	"github.com/healthhelpdesk/helpdesk-service/internal/observability"
	"github.com/healthhelpdesk/helpdesk-service/internal/persistence"
	"github.com/healthhelpdesk/helpdesk-service/internal/repository"
	"github.com/healthhelpdesk/helpdesk-service/internal/service"
	"github.com/healthhelpdesk/helpdesk-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		ticketRepo repository.TicketRepository
		chatRepo   repository.ChatMessageRepository
		userRepo   repository.UserRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		ticketRepo = repository.NewTicketRepository(pool)
		chatRepo = repository.NewChatMessageRepository(pool)
		userRepo = repository.NewUserRepository(pool)
	} else {
		ticketRepo = repository.NewMemoryTicketRepository()
		chatRepo = repository.NewMemoryChatMessageRepository()
		userRepo = repository.NewMemoryUserRepository()
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	gateway := chatbot.NewGateway(cfg.OpenAI, nil, logger)
	bot := chatbot.NewChatbot(gateway, cfg.OpenAI.APIKey, cfg.OpenAI.BackupAPIKey, logger, metrics)

	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	chatService := service.NewChatService(chatRepo, bot, redis, dispatcher, logger)
	authService := service.NewAuthService(cfg.Auth, userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Chat:           handlers.NewChatHandler(chatService),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
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
