package api

import (
	"strings"
	"time"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/api/handlers"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/api/middleware"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/config"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/genai"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/mailbox"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter initializes and returns the Gin router with all routes configured
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *middleware.AuthManager, error) {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Initialize auth manager
	authManager, err := middleware.NewAuthManager(cfg.DataDir, cfg.JWTSecret, middleware.DefaultTokenExpiry)
	if err != nil {
		return nil, nil, err
	}

	// Initialize services
	logService := services.NewLogServiceWithLevel(db, cfg.LogLevel)
	settingsService := services.NewSettingsService(db, cfg)

	// Resolve the generator backend once at startup. Settings changed over
	// the API are persisted but picked up on the next process start.
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}
	client := genai.NewClient()
	client.ConfigureWithBaseURL(settings.Provider, settings.APIKey, settings.Model, settings.BaseURL)
	gateway := genai.NewGateway(client)

	tokenStore := mailbox.NewTokenStore(db)
	authenticator := mailbox.NewAuthenticator(cfg.CredentialsPath, tokenStore)

	triageService := services.NewTriageService(
		authenticator,
		gateway,
		logService,
		cfg.GetUploadsDir(),
		settings.Signature,
		settings.MaxMessages,
		settings.NumOptions,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authManager.JWTManager, logService)
	triageHandler := handlers.NewTriageHandler(triageService, logService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logService)

	// Health check endpoint (no auth required)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		// Apply API key middleware to all API routes
		api.Use(middleware.APIKeyMiddleware(authManager.APIKeyManager))

		// Auth routes (API key required, but no JWT required)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes (API key + JWT required)
		protected := api.Group("")
		protected.Use(middleware.JWTMiddleware(authManager.JWTManager))
		{
			// Mailbox OAuth routes
			protected.GET("/mailbox/auth", triageHandler.MailboxAuthStatus)
			protected.POST("/mailbox/auth", triageHandler.CompleteMailboxAuth)

			// Triage routes
			protected.GET("/emails", triageHandler.GetEmails)
			protected.POST("/suggest-reply", triageHandler.SuggestReply)
			protected.POST("/send-reply", triageHandler.SendReply)

			// Generator settings routes
			settingsGroup := protected.Group("/settings")
			{
				settingsGroup.GET("/generator", settingsHandler.GetSettings)
				settingsGroup.PUT("/generator", settingsHandler.UpdateSettings)
			}
		}
	}

	return router, authManager, nil
}
