// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"
	_ "wordvault/docs" // Import swagger docs
	"wordvault/internal/api/handlers"
	"wordvault/internal/api/middleware"
	"wordvault/internal/audit"
	"wordvault/internal/auth"
	"wordvault/internal/cleanup"
	"wordvault/internal/config"
	"wordvault/internal/dictionary"
	"wordvault/internal/otp"
	"wordvault/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB, dictService *dictionary.Service, dispatcher otp.Dispatcher) *gin.Engine {
	r := gin.Default()

	// Apply compression middleware globally
	r.Use(middleware.Compression(middleware.DefaultCompressionConfig()))

	healthHandler := handlers.NewHealthHandler(db)

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Apply rate limiting to all other routes
	r.Use(middleware.NewRateLimiter(cfg).Middleware())

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	otpCodeRepo := postgres.NewOtpCodeRepository(db)
	authLogRepo := postgres.NewAuthLogRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	settingRepo := postgres.NewSettingRepository(db)

	// Initialize services
	otpService := otp.NewService(cfg.OTP, otpCodeRepo, dispatcher)
	auditService := audit.NewService(authLogRepo, audit.LogSink{})
	authService := auth.NewService(cfg, userRepo, otpService, auditService)
	cleanupJob := cleanup.NewFavoritesJob(favoriteRepo, settingRepo, cfg.Cleanup.Schedule)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	dictHandler := handlers.NewDictionaryHandler(dictService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo)
	settingsHandler := handlers.NewSettingsHandler(settingRepo, cleanupJob)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Health check (no authentication required)
		v1.GET("/health", healthHandler.Health)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/verify-otp", authHandler.VerifyOtp)
			authGroup.POST("/resend-otp", authHandler.ResendOtp)
			authGroup.POST("/otp-status", authHandler.OtpStatus)
			authGroup.POST("/logout", authMiddleware.AuthRequired(), authHandler.Logout)
			authGroup.GET("/me", authMiddleware.AuthRequired(), authHandler.Me)
		}

		// Dictionary routes
		dict := v1.Group("/dictionary")
		{
			dict.GET("/search", dictHandler.Search)
			dict.GET("/:word/definitions", dictHandler.Definitions)
			dict.GET("/:word/synonyms", dictHandler.Synonyms)
			dict.GET("/:word/antonyms", dictHandler.Antonyms)
			dict.GET("/:word/examples", dictHandler.Examples)
			dict.GET("/:word/pronunciation", dictHandler.Pronunciation)
			dict.DELETE("/:word/cache", authMiddleware.AuthRequired(), dictHandler.ClearCache)
		}

		// Favorites routes (requires authentication)
		favorites := v1.Group("/favorites")
		favorites.Use(authMiddleware.AuthRequired())
		{
			favorites.GET("", favoriteHandler.List)
			favorites.POST("", favoriteHandler.Create)
			favorites.PUT("/:id", favoriteHandler.Update)
			favorites.DELETE("/:id", favoriteHandler.Delete)
		}

		// Settings routes (requires authentication)
		settings := v1.Group("/settings")
		settings.Use(authMiddleware.AuthRequired())
		{
			settings.GET("/cleanup", settingsHandler.GetCleanup)
			settings.PUT("/cleanup", settingsHandler.UpdateCleanup)
		}
	}

	return r
}
