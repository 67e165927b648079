package main

// @title Vendor Map Service API
// @version 1.0.0
// @description Сервис фильтрации и агрегации вендоров для интерактивного дашборда карты.
// @description
// @description Основные возможности:
// @description - Отбор вендоров по времени, городу, бизнес-линии, статусу, грейду и области
// @description - Display-радиусы вендоров (процентный и фиксированный режимы)
// @description - Агрегаты по полигонам справочных слоев
// @description - Сетка покрытия 200м с кешированием в Redis
// @description - Тепловые карты заказов, пользователей и населения

// @contact.name API Support

// @host localhost:8080
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/vendormap-service/docs"
	"github.com/vendormap-service/internal/config"
	httpDelivery "github.com/vendormap-service/internal/delivery/http"
	"github.com/vendormap-service/internal/delivery/http/handler"
	"github.com/vendormap-service/internal/geo"
	"github.com/vendormap-service/internal/pkg/logger"
	"github.com/vendormap-service/internal/repository/cache"
	"github.com/vendormap-service/internal/repository/geofile"
	"github.com/vendormap-service/internal/repository/postgres"
	"github.com/vendormap-service/internal/usecase"
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

	log.Info("Starting Vendor Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
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

	// 6. Initialize Repositories
	vendorRepo := postgres.NewVendorRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	geometryRepo := geofile.NewGeometryRepository(&cfg.Data, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	log.Info("Repositories initialized")

	// 7. Initialize geometry store (lazy per-layer loading)
	geoStore := geo.NewStore(geometryRepo, log)

	// 8. Initialize Use Cases
	filterResolver := usecase.NewFilterResolver(cfg.Cities, log)
	vendorSelector := usecase.NewVendorSelector(geoStore, log)
	areaAggregator := usecase.NewAreaAggregator(geoStore, log)
	coverageBuilder := usecase.NewCoverageGridBuilder(
		geoStore,
		cacheRepo,
		cfg.Cities,
		cfg.Grid.CellSizeMeters,
		cfg.Cache.CoverageGridTTL,
		log,
	)
	heatmapGenerator := usecase.NewHeatmapGenerator(geoStore, log)

	mapDataUC := usecase.NewMapDataUseCase(
		vendorRepo,
		orderRepo,
		filterResolver,
		vendorSelector,
		areaAggregator,
		coverageBuilder,
		heatmapGenerator,
		log,
	)
	refDataUC := usecase.NewRefDataUseCase(
		vendorRepo,
		orderRepo,
		cacheRepo,
		geoStore,
		cfg.Cities,
		cfg.Cache.InitialDataTTL,
		log,
	)
	log.Info("Use cases initialized")

	// 9. Initialize Handlers
	mapDataHandler := handler.NewMapDataHandler(mapDataUC, log)
	refDataHandler := handler.NewRefDataHandler(refDataUC, log)

	// 10. Initialize and start HTTP server
	server := httpDelivery.NewServer(cfg, log, mapDataHandler, refDataHandler, db, redisClient)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
