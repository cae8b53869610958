package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"booking-server/internal/appointments"
	"booking-server/internal/config"
	"booking-server/internal/handlers"
	"booking-server/internal/middleware"
	"booking-server/internal/store"
)

// Deps are the shared resources the routes are built from.
type Deps struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Dispatcher appointments.Dispatcher
	Limiter    *middleware.RateLimiter
	Log        zerolog.Logger
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, d Deps) {
	// Stores
	appointmentStore := store.NewAppointmentStore(d.DB)
	userStore := store.NewUserStore(d.DB)
	notificationStore := store.NewNotificationStore(d.DB)
	fileStore := store.NewFileStore(d.DB)
	tokenStore := store.NewRefreshTokenStore(d.DB)

	service := appointments.NewService(appointments.Deps{
		Appointments:  appointmentStore,
		Providers:     userStore,
		Users:         userStore,
		Notifications: notificationStore,
		Dispatcher:    d.Dispatcher,
		Logger:        d.Log,
	})

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(userStore, tokenStore, d.Cfg, d.Log)
	userHandler := handlers.NewUserHandler(userStore, fileStore, tokenStore, d.Log)
	fileHandler := handlers.NewFileHandler(fileStore, d.Cfg.UploadDir, d.Log)
	providerHandler := handlers.NewProviderHandler(userStore, service, d.Log)
	appointmentHandler := handlers.NewAppointmentHandler(service, d.Log)
	scheduleHandler := handlers.NewScheduleHandler(service, d.Log)
	notificationHandler := handlers.NewNotificationHandler(notificationStore, userStore, d.Log)

	router.Static("/files", d.Cfg.UploadDir)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/users", userHandler.Store)

		sessions := public.Group("/sessions")
		if d.Limiter != nil {
			sessions.Use(middleware.RateLimit(d.Limiter))
		}
		{
			sessions.POST("", sessionHandler.Store)
			sessions.POST("/refresh", sessionHandler.Refresh)
			sessions.POST("/logout", sessionHandler.Logout)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(d.Cfg.JWTSecret))
	{
		private.PUT("/users", userHandler.Update)
		private.POST("/files", fileHandler.Store)

		private.GET("/providers", providerHandler.Index)
		private.GET("/providers/:id/available", providerHandler.Available)

		private.GET("/appointments", appointmentHandler.Index)
		private.POST("/appointments", appointmentHandler.Store)
		private.DELETE("/appointments/:id", appointmentHandler.Delete)

		private.GET("/schedule", scheduleHandler.Index)

		private.GET("/notifications", notificationHandler.Index)
		private.PUT("/notifications/:id", notificationHandler.Update)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
