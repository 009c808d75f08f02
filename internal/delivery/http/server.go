package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/config"
	"github.com/caribdigital/coralledgerblue-sub004/internal/delivery/http/handler"
	"github.com/caribdigital/coralledgerblue-sub004/internal/delivery/http/middleware"
	"github.com/caribdigital/coralledgerblue-sub004/internal/delivery/ws"
	"github.com/caribdigital/coralledgerblue-sub004/internal/observability"
)

// Server - HTTP server built on Fiber
type Server struct {
	app       *fiber.App
	config    *config.Config
	logger    *zap.Logger
	collector *observability.EngineCollector

	// Handlers
	alertHandler       *handler.AlertHandler
	containmentHandler *handler.ContainmentHandler
	boundaryHandler    *handler.BoundaryHandler
	hub                *ws.Hub
}

// NewServer - create a new HTTP server
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	collector *observability.EngineCollector,
	alertHandler *handler.AlertHandler,
	containmentHandler *handler.ContainmentHandler,
	boundaryHandler *handler.BoundaryHandler,
	hub *ws.Hub,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Spatial Alert Engine",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                app,
		config:             cfg,
		logger:             logger,
		collector:          collector,
		alertHandler:       alertHandler,
		containmentHandler: containmentHandler,
		boundaryHandler:    boundaryHandler,
		hub:                hub,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - register global middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - register routes
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus metrics
	s.app.Get("/metrics", adaptor.HTTPHandler(s.collector.Handler()))

	// Realtime alert feed for dashboards
	s.app.Use("/ws/alerts", ws.UpgradeRequired())
	s.app.Get("/ws/alerts", s.hub.Handler())

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Evaluation routes
	api.Post("/alerts/evaluate", s.alertHandler.EvaluateAll)
	api.Post("/alerts/evaluate/rule/:id", s.alertHandler.EvaluateRule)
	api.Post("/alerts/evaluate/type/:type", s.alertHandler.EvaluateType)

	// Alert feed
	api.Get("/alerts/recent", s.alertHandler.GetRecent)

	// Rule routes
	api.Get("/rules", s.alertHandler.ListRules)
	api.Get("/rules/:id", s.alertHandler.GetRule)

	// Containment routes
	api.Post("/containment/batch", s.containmentHandler.CheckBatch)

	// Boundary routes
	api.Post("/boundaries/:id/preview", s.boundaryHandler.Preview)
	api.Put("/boundaries/:id", s.boundaryHandler.Apply)
	api.Get("/boundaries/:id/tiers/:tier", s.boundaryHandler.GetTier)
}

// Start - start the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - error handler of last resort
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
