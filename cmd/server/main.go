package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placesbot/internal/bot"
	"placesbot/internal/config"
	"placesbot/internal/handler"
	"placesbot/internal/monitoring"
	"placesbot/internal/repository"
	"placesbot/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Places Assistant")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize services
	store := repository.NewConversationStore(repo.DB())
	queryTimeout := time.Duration(cfg.Bot.QueryTimeoutSec) * time.Second
	responder := bot.NewResponder(repo, bot.NewRandPicker(), cfg.Bot.SearchLimit, queryTimeout)
	chatService := service.NewChatService(
		repo,
		store,
		bot.NewClassifier(),
		responder,
		cfg.Bot.DefaultTypes,
		queryTimeout,
		cfg.Bot.PersistQueueSize,
	)
	defer chatService.Close()

	log.Println("✅ Services initialized")
	log.Printf("   - Search limit: %d", cfg.Bot.SearchLimit)
	log.Printf("   - Query timeout: %s", queryTimeout)
	log.Printf("   - Default types: %v", cfg.Bot.DefaultTypes)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService)
	placesHandler := handler.NewPlacesHandler(repo, cfg.Bot.SearchLimit, 100)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "places-assistant",
			"version": Version,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Prometheus metrics
	router.GET("/metrics", monitoring.Handler())

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Turn)
		apiV1.GET("/chat/:session_id/history", chatHandler.History)

		apiV1.GET("/places", placesHandler.List)
		apiV1.GET("/places/:id", placesHandler.Get)
		apiV1.GET("/types", placesHandler.Types)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
