package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/vendormap-service/internal/config"
	"github.com/vendormap-service/internal/delivery/http/handler"
	"github.com/vendormap-service/internal/delivery/http/middleware"
)

// HealthChecker - проверка живости внешней зависимости
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	mapDataHandler *handler.MapDataHandler
	refDataHandler *handler.RefDataHandler

	// Health checks
	db    HealthChecker
	redis HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mapDataHandler *handler.MapDataHandler,
	refDataHandler *handler.RefDataHandler,
	db HealthChecker,
	redis HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Vendor Map Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		mapDataHandler: mapDataHandler,
		refDataHandler: refDataHandler,
		db:             db,
		redis:          redis,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api")

	api.Get("/health", s.health)
	api.Get("/initial-data", s.refDataHandler.GetInitialData)
	api.Get("/map-data", s.mapDataHandler.GetMapData)
}

// health - проверка живости сервиса и его зависимостей
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	status := fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	}
	code := fiber.StatusOK

	if err := s.db.Health(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		code = fiber.StatusServiceUnavailable
	}
	if err := s.redis.Health(ctx); err != nil {
		status["status"] = "degraded"
		status["redis"] = err.Error()
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(status)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
