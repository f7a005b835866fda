// Package main provides the entry point for the WordVault API server
// @title WordVault API
// @version 1.0
// @description Dictionary and vocabulary API with OTP-verified authentication.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication
// @Security BearerAuth
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"wordvault/internal/api/routes"
	"wordvault/internal/cleanup"
	"wordvault/internal/config"
	"wordvault/internal/database"
	"wordvault/internal/dictionary"
	"wordvault/internal/email"
	"wordvault/internal/notify"
	"wordvault/internal/repository/postgres"
	"wordvault/internal/validation"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file
	if err := godotenv.Load(*envFile); err != nil && *envFile == ".env" {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize validators
	validation.Initialize()

	// Dictionary cache is optional: without Redis, lookups hit the upstream
	// every time but everything still works.
	var dictCache dictionary.Cache
	if cfg.Dictionary.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Dictionary.RedisAddr,
			Password: cfg.Dictionary.RedisPassword,
			DB:       cfg.Dictionary.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: redis ping failed, running without dictionary cache: %v", err)
		} else {
			dictCache = dictionary.NewRedisCache(redisClient)
		}
		cancel()
	}
	dictService := dictionary.NewService(cfg.Dictionary.BaseURL, dictCache, time.Duration(cfg.Dictionary.CacheTTLMinutes)*time.Minute)

	// Verification codes go out by email through the async dispatcher
	emailService := email.NewService(cfg.Email)
	defer emailService.Close()
	dispatcher := notify.NewDispatcher(emailService)
	defer dispatcher.Close()

	// Setup routes
	router := routes.SetupRoutes(cfg, db, dictService, dispatcher)

	// Start the cleanup scheduler
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if cfg.Cleanup.Enabled {
		manager := cleanup.NewManager()
		manager.Register(cleanup.NewFavoritesJob(
			postgres.NewFavoriteRepository(db),
			postgres.NewSettingRepository(db),
			cfg.Cleanup.Schedule,
		))
		go func() {
			if err := manager.StartScheduler(schedulerCtx); err != nil {
				log.Printf("Cleanup scheduler stopped: %v", err)
			}
		}()
	} else {
		log.Println("Cleanup scheduler is disabled")
	}

	// Convert port string to int
	port, err := strconv.Atoi(cfg.API.Port)
	if err != nil {
		log.Fatalf("Invalid port number: %v", err)
	}

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
