package main

// @title Bubbly API
// @version 1.0.0
// @description Сервис карты питьевых фонтанов. Кластеризованная карта waypoints с GeoJSON-кластерами, вклад пользователей с начислением XP, профили с handle и поиском, стили тайлсервера для светлой и тёмной темы.

// @contact.name Linus Kang Software
// @contact.url https://github.com/linuskangsoftware/bubbly

// @license.name CC BY-NC 4.0
// @license.url https://creativecommons.org/licenses/by-nc/4.0/

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/linuskangsoftware/bubbly/docs"
	"github.com/linuskangsoftware/bubbly/internal/auth"
	"github.com/linuskangsoftware/bubbly/internal/config"
	httpDelivery "github.com/linuskangsoftware/bubbly/internal/delivery/http"
	"github.com/linuskangsoftware/bubbly/internal/delivery/http/handler"
	"github.com/linuskangsoftware/bubbly/internal/infrastructure/tileserver"
	"github.com/linuskangsoftware/bubbly/internal/pkg/logger"
	"github.com/linuskangsoftware/bubbly/internal/repository/cache"
	"github.com/linuskangsoftware/bubbly/internal/repository/postgres"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Bubbly API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL and apply migrations
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer migrateCancel()
	if err := db.Migrate(migrateCtx); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}
	log.Info("Migrations applied")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	waypointRepo := postgres.NewWaypointRepository(db)
	userRepo := postgres.NewUserRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	styleRepo := tileserver.NewClient(&cfg.TileServer, log)
	log.Info("Repositories initialized")

	// 7. Initialize services and use cases
	authSvc := auth.NewService(&cfg.Auth)

	waypointUC := usecase.NewWaypointUseCase(
		waypointRepo,
		userRepo,
		cacheRepo,
		log,
		cfg.Map,
		cfg.Cache,
	)
	userUC := usecase.NewUserUseCase(userRepo, log, cfg.Map.LegacyFalsyPatch)
	searchUC := usecase.NewSearchUseCase(waypointUC, log, cfg.Map.FlyZoom)
	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	waypointHandler := handler.NewWaypointHandler(waypointUC, log)
	userHandler := handler.NewUserHandler(userUC, log)
	authHandler := handler.NewAuthHandler(userUC, authSvc, log)
	mapHandler := handler.NewMapHandler(waypointUC, styleRepo, cfg.Map, log)
	searchHandler := handler.NewSearchHandler(searchUC, log)
	metaHandler := handler.NewMetaHandler(cfg.Meta.Version, db, redisClient, log)
	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		authSvc,
		waypointHandler,
		userHandler,
		authHandler,
		mapHandler,
		searchHandler,
		metaHandler,
	)
	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
