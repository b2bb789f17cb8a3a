package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/mountain-explorer/internal/config"
	"github.com/mountain-explorer/internal/delivery/http/handler"
	"github.com/mountain-explorer/internal/delivery/http/middleware"
	"github.com/mountain-explorer/internal/pkg/errors"
	"github.com/mountain-explorer/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	mountainHandler *handler.MountainHandler
	locationHandler *handler.LocationHandler
	detailsHandler  *handler.DetailsHandler
	healthHandler   *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mountainHandler *handler.MountainHandler,
	locationHandler *handler.LocationHandler,
	detailsHandler *handler.DetailsHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	// Overpass может отвечать до OVERPASS_TIMEOUT на каждое зеркало
	writeTimeout := cfg.Overpass.RequestTimeout*time.Duration(len(cfg.Overpass.Endpoints)) + 10*time.Second

	app := fiber.New(fiber.Config{
		AppName:      "Mountain Explorer",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		mountainHandler: mountainHandler,
		locationHandler: locationHandler,
		detailsHandler:  detailsHandler,
		healthHandler:   healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App возвращает fiber.App (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Mountains
	api.Get("/mountains/nearby", s.mountainHandler.Nearby)
	api.Get("/mountains/:id/details", s.detailsHandler.GetDetails)

	// Locations
	api.Post("/locations/select", s.locationHandler.SelectLocation)
	api.Get("/places/search", s.locationHandler.SearchPlace)

	// Sessions
	api.Get("/sessions/:id/state", s.locationHandler.LoadState)
	api.Put("/sessions/:id/state", s.locationHandler.SaveState)
	api.Delete("/sessions/:id/state", s.locationHandler.ClearState)
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

// customErrorHandler - ошибки fiber (404 маршрута, 405 и т.п.) в формате API
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New("HTTP_ERROR", e.Message, code)
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}
