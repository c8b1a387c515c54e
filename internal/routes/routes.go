package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appointments-server/internal/booking"
	"appointments-server/internal/cache"
	"appointments-server/internal/config"
	"appointments-server/internal/handlers"
	"appointments-server/internal/metrics"
	"appointments-server/internal/middleware"
	"appointments-server/internal/notify"
	"appointments-server/internal/storage"
	"appointments-server/internal/store"
)

// Dependencies are the collaborators the handlers are built from.
type Dependencies struct {
	Cfg           *config.Config
	Log           *zap.Logger
	Users         store.UserStore
	Files         store.FileStore
	Notifications notify.Store
	Cache         cache.Cache
	Disk          *storage.Disk
	Bookings      *booking.Service
	Limiter       *middleware.RateLimiter
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	cfg := deps.Cfg

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.Users, deps.Files, deps.Cache, cfg, deps.Log)
	sessionHandler := handlers.NewSessionHandler(deps.Users, cfg)
	fileHandler := handlers.NewFileHandler(deps.Files, deps.Disk, cfg, deps.Log)
	providerHandler := handlers.NewProviderHandler(deps.Users, deps.Cache, deps.Bookings, cfg, deps.Log)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Bookings, cfg)
	scheduleHandler := handlers.NewScheduleHandler(deps.Bookings, cfg)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)

	// Public routes (no authentication required)
	router.POST("/users", deps.Limiter.Handler(), userHandler.CreateUser)
	router.POST("/sessions", deps.Limiter.Handler(), sessionHandler.CreateSession)
	router.GET("/files/:path", fileHandler.GetFile)

	// Authenticated routes
	private := router.Group("")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.PUT("/users", userHandler.UpdateUser)
		private.POST("/files", fileHandler.UploadFile)

		private.GET("/providers", providerHandler.GetProviders)
		private.GET("/providers/:providerId/available", providerHandler.GetAvailability)

		private.GET("/appointments", appointmentHandler.GetAppointments)
		private.POST("/appointments", appointmentHandler.CreateAppointment)
		private.DELETE("/appointments/:id", appointmentHandler.CancelAppointment)

		// Provider-only routes
		providers := private.Group("")
		providers.Use(middleware.ProviderOnly(deps.Users))
		{
			providers.GET("/schedule", scheduleHandler.GetSchedule)
			providers.GET("/notifications", notificationHandler.GetNotifications)
		}
		// Recipients mark their own notifications; the handler checks ownership
		private.PUT("/notifications/:id", notificationHandler.MarkNotificationAsRead)
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
