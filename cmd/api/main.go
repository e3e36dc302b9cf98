package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shopkit/shop-service/internal/api/http"
	"github.com/shopkit/shop-service/internal/api/http/handlers"
	"github.com/shopkit/shop-service/internal/auth"
	"github.com/shopkit/shop-service/internal/cache"
	"github.com/shopkit/shop-service/internal/config"
	"github.com/shopkit/shop-service/internal/events"
	"github.com/shopkit/shop-service/internal/observability"
	"github.com/shopkit/shop-service/internal/persistence"
	"github.com/shopkit/shop-service/internal/repository"
	"github.com/shopkit/shop-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	userRepo, productRepo := buildRepositories(pg)

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	productService := service.NewProductService(service.ProductDependencies{
		ProductRepo: productRepo,
		Cache:       cache.NewProductCache(redis.Client, cfg.Cache.ProductTTL(), logger),
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		Timeout: cfg.App.RequestTimeout(),
		CORS:    cfg.CORS,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:               handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:                handlers.NewUsersHandler(authService),
		Products:             handlers.NewProductsHandler(productService),
		AuthMiddleware:       authMiddleware,
		ProtectProductWrites: cfg.Auth.ProtectProductWrites,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// buildRepositories falls back to in-memory stores when no database is configured.
func buildRepositories(pg *persistence.Postgres) (repository.UserRepository, repository.ProductRepository) {
	if !pg.Configured() {
		return repository.NewMemoryUserRepository(), repository.NewMemoryProductRepository()
	}
	pool := pg.PoolHandle()
	return repository.NewUserRepository(pool), repository.NewProductRepository(pool)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
