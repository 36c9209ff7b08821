package main

import (
	"schedule-service/internal/handler"
	"schedule-service/internal/middleware"
	"schedule-service/internal/scheduling"
	"schedule-service/internal/store"
	"schedule-service/pkg/config"
	"schedule-service/pkg/database"
	"schedule-service/pkg/jwtutil"
	"schedule-service/pkg/logger"
	"schedule-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting schedule service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Resolve the calendar timezone governing day-of-week math
	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone", zap.String("timezone", cfg.Schedule.Timezone), zap.Error(err))
	}
	log.Info("Calendar timezone resolved", zap.String("timezone", loc.String()))

	// Wire the scheduling core over the gorm store
	svc := scheduling.NewService(store.NewGormStore(database.GetDB()), scheduling.NewExpander(loc), log)
	eventHandler := handler.NewEventHandler(svc)
	userHandler := handler.NewUserHandler(svc)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// User management
	users := api.Group("/users")
	users.POST("/ensure", userHandler.EnsureUser)
	users.GET("/me", userHandler.GetCurrentUser)
	users.GET("", userHandler.ListUsers)
	users.PATCH("/:id/role", userHandler.UpdateUserRole)

	// Events and the calendar window query
	events := api.Group("/events")
	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.GetVisibleEvents)
	events.GET("/pending", eventHandler.GetPendingEvents)
	events.GET("/pending/mine", eventHandler.GetUserPendingEvents)
	events.PATCH("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)
	events.POST("/:id/approve", eventHandler.ApproveEvent)
	events.POST("/:id/reject", eventHandler.RejectEvent)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
