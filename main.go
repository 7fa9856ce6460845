package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pilinks/config"
	"pilinks/events"
	"pilinks/handlers"
	"pilinks/logger"
	"pilinks/middleware"
	"pilinks/repositories"
	"pilinks/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found")
	}

	// Initialize storage; nil db means mock mode (in-memory, no persistence)
	db := config.InitDB()

	var postRepo repositories.PostRepository
	var userRepo repositories.UserRepository
	if db != nil {
		postRepo = repositories.NewPostRepository(db)
		userRepo = repositories.NewUserRepository(db)
	} else {
		logger.Log.Warn("running in mock mode: no database configured, submissions will not survive a restart")
		postRepo = repositories.NewMemoryPostRepository()
		userRepo = repositories.NewMemoryUserRepository()
	}

	// Realtime fan-out
	bus := events.NewBus()
	hub := events.NewHub(bus)
	defer hub.Close()

	// Pi identity verification
	var verifier services.PiVerifier
	if baseURL := config.PiAPIBaseURL(); baseURL != "" {
		verifier = services.NewPiVerifier(baseURL)
	} else {
		logger.Log.Warn("PI_API_BASE_URL not set, accepting logins with the sandbox identity")
		verifier = services.NewSandboxVerifier()
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, verifier, config.AdminPiUIDs())
	enricher := services.NewEnrichmentService(config.EnrichmentEnabled())
	postService := services.NewPostService(postRepo, enricher, bus)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)

	// Setup router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "mock_mode": db == nil})
	})

	// Realtime change stream: clients re-fetch the feed on every event
	router.GET("/ws", gin.WrapH(hub))

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Public feed (active posts only)
		public := v1.Group("/public")
		{
			public.GET("/posts", postHandler.GetPublicPosts)
			public.GET("/posts/:id", postHandler.GetPublicPost)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)

			posts := protected.Group("/posts")
			{
				posts.POST("", postHandler.CreatePost)
				posts.GET("", postHandler.GetPosts)
			}

			// Moderation surface
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.PUT("/posts/:id/status", postHandler.UpdatePostStatus)
				admin.DELETE("/posts/:id", postHandler.DeletePost)
			}
		}
	}

	// Start server
	port := config.Port()
	logger.Log.Infof("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
