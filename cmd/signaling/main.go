package main

import (
	"log"

	"github.com/peerdial/signaling/config"
	"github.com/peerdial/signaling/internal/handlers"
	"github.com/peerdial/signaling/internal/middleware"
	"github.com/peerdial/signaling/internal/relay"
	"github.com/peerdial/signaling/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Call records live in a flat JSON file next to the process
	callLog := store.NewCallLog(cfg.RecordsPath)

	// Signaling core: registry, session tracker, message router
	signaler := relay.NewRouter(relay.NewRegistry(), relay.NewTracker(), callLog)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Global CORS middleware (runs before routing)
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Operator API (call history behind JWT)
	apiGroup := router.Group("/api")
	{
		// Login endpoint (public)
		apiGroup.POST("/auth/login", handlers.Login(cfg.JWTSecret))

		// Completed-call records (requires JWT)
		apiGroup.GET("/records", middleware.JWTAuth(cfg.JWTSecret), handlers.ListRecords(callLog))
	}

	// WebSocket signaling endpoint
	router.GET("/ws", handlers.HandleSignaling(signaler))

	// Start server
	log.Printf("Starting signaling server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
