// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/sisvmarcas/crm-backend/internal/config"
	"github.com/sisvmarcas/crm-backend/internal/events"
	"github.com/sisvmarcas/crm-backend/internal/handlers"
	"github.com/sisvmarcas/crm-backend/internal/middleware"
	"github.com/sisvmarcas/crm-backend/internal/services"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	hub := events.NewHub()

	authService := services.NewAuthService(db, cfg)
	leadService := services.NewLeadService(db, cfg, hub)
	statsService := services.NewStatsService(leadService)
	agendaService := services.NewAgendaService(leadService)
	pitchService := services.NewPitchService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	leadHandler := handlers.NewLeadHandler(leadService, pitchService)
	statsHandler := handlers.NewStatsHandler(statsService)
	agendaHandler := handlers.NewAgendaHandler(agendaService)
	vendedorHandler := handlers.NewVendedorHandler(authService)
	eventsHandler := handlers.NewEventsHandler(hub)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.Metrics())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Lead routes
		leads := v1.Group("/leads")
		leads.Use(middleware.AuthRequired())
		{
			leads.GET("", leadHandler.List)
			leads.POST("", leadHandler.Create)
			leads.PUT("/:id", leadHandler.Update)
			leads.PATCH("/:id/status", leadHandler.UpdateStatus)
			leads.POST("/:id/pitch", middleware.PitchRateLimit(), leadHandler.GeneratePitch)
		}

		// Board statistics
		v1.GET("/stats", middleware.AuthRequired(), statsHandler.GetStats)

		// Weekly agenda
		v1.GET("/agenda", middleware.AuthRequired(), agendaHandler.GetWeek)

		// Seller profiles for the owner dropdown
		v1.GET("/vendedores", middleware.AuthRequired(), vendedorHandler.List)

		// Change feed
		v1.GET("/events", middleware.AuthRequired(), eventsHandler.Stream)
	}

	return r
}
