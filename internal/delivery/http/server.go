package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/auth"
	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/delivery/http/handler"
	"github.com/linuskangsoftware/bubbly/internal/delivery/http/middleware"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	authSvc *auth.Service

	// Handlers
	waypointHandler *handler.WaypointHandler
	userHandler     *handler.UserHandler
	authHandler     *handler.AuthHandler
	mapHandler      *handler.MapHandler
	searchHandler   *handler.SearchHandler
	metaHandler     *handler.MetaHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authSvc *auth.Service,
	waypointHandler *handler.WaypointHandler,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	mapHandler *handler.MapHandler,
	searchHandler *handler.SearchHandler,
	metaHandler *handler.MetaHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Bubbly API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		authSvc:         authSvc,
		waypointHandler: waypointHandler,
		userHandler:     userHandler,
		authHandler:     authHandler,
		mapHandler:      mapHandler,
		searchHandler:   searchHandler,
		metaHandler:     metaHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App — fiber-приложение (для httptest в тестах).
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
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

	api := s.app.Group("/api/v1")

	session := middleware.Session(s.authSvc)
	serviceToken := middleware.ServiceToken(s.authSvc)
	sessionOrToken := middleware.SessionOrServiceToken(s.authSvc)

	// Meta
	api.Get("/health", s.metaHandler.Health)
	api.Get("/meta", s.metaHandler.Meta)

	// Auth
	api.Post("/auth/signin", s.authHandler.SignIn)

	// Waypoints
	api.Get("/waypoints", s.waypointHandler.List)
	api.Post("/waypoints", sessionOrToken, s.waypointHandler.Create)
	api.Delete("/waypoints/:id", serviceToken, s.waypointHandler.Delete)

	// Map
	api.Get("/map/style", s.mapHandler.Style)
	api.Get("/map/layers", s.mapHandler.Layers)
	api.Get("/map/clusters", s.mapHandler.Clusters)
	api.Get("/map/clusters/:id/expansion-zoom", s.mapHandler.ExpansionZoom)
	api.Get("/map/viewport", s.mapHandler.Viewport)

	// Search
	api.Get("/search/waypoints", s.searchHandler.Search)

	// Users
	api.Get("/users", s.userHandler.List)
	api.Get("/users/search", s.userHandler.Search)
	api.Get("/users/top", s.userHandler.Top)
	api.Post("/users/update", session, s.userHandler.Update)
	api.Post("/users/:id/xp", serviceToken, s.userHandler.AdjustXP)
	api.Post("/users/:id/moderator", serviceToken, s.userHandler.SetModerator)
	api.Post("/users/:id/verified", serviceToken, s.userHandler.SetVerified)
	api.Delete("/users/:id", serviceToken, s.userHandler.Delete)
	// :handle после статических путей, иначе он их перехватит
	api.Get("/users/:handle", s.userHandler.GetByHandle)
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
