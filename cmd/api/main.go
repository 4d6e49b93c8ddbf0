package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/asset-inventory/internal/api/http"
	"github.com/spec-kit/asset-inventory/internal/api/http/handlers"
	"github.com/spec-kit/asset-inventory/internal/cache"
	"github.com/spec-kit/asset-inventory/internal/config"
	"github.com/spec-kit/asset-inventory/internal/events"
	"github.com/spec-kit/asset-inventory/internal/identity"
	"github.com/spec-kit/asset-inventory/internal/observability"
	"github.com/spec-kit/asset-inventory/internal/persistence"
	"github.com/spec-kit/asset-inventory/internal/repository"
	"github.com/spec-kit/asset-inventory/internal/service"
	"github.com/spec-kit/asset-inventory/internal/worker"
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

	pool := pg.PoolHandle()
	assetRepo := repository.NewAssetRepository(pool)
	ticketRepo := repository.NewSupportTicketRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	listCache := cache.NewAssetListCache(redis.ClientHandle(), cfg.Cache.AssetListTTL(), logger)

	provider, err := identity.NewDemoProvider(cfg.Auth.VerifyPasswords, cfg.Auth.DemoPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init identity provider", zap.Error(err))
	}
	tokens := identity.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)

	authService := service.NewAuthService(provider, profileRepo, tokens, logger)
	assetService := service.NewAssetService(service.AssetDependencies{
		AssetRepo:  assetRepo,
		AuditRepo:  auditRepo,
		ListCache:  listCache,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		AssetRepo:  assetRepo,
		AuditRepo:  auditRepo,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService),
		Users:   handlers.NewUsersHandler(authService),
		Assets:  handlers.NewAssetsHandler(assetService, authService, tokens),
		Tickets: handlers.NewTicketsHandler(ticketService, tokens),
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
