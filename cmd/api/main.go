package main

import (
	"fmt"
	"log"
	"net/http"

	"session-demand-api/config"
	"session-demand-api/handlers"
	"session-demand-api/middleware"
	"session-demand-api/models"
	"session-demand-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to migrate users table: %v", err)
	}

	// Redis is best-effort: with no cache the API still answers, just
	// without response caching or live events.
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	}
	defer cache.Close()

	authService := services.NewAuthService(cfg.JWT)
	sessionStore := services.NewSessionStore(db)
	modelStore := services.NewModelStore(cfg.Forecast.ModelPath)
	trainer := services.NewTrainer(modelStore, cfg.Forecast.MinObservations)
	predictor := services.NewPredictor(modelStore)

	authHandler := handlers.NewAuthHandler(db, authService)
	reportsHandler := handlers.NewReportsHandler(sessionStore, trainer, predictor, cache, cfg.Forecast)
	sessionsHandler := handlers.NewSessionsHandler(db, cache)

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Cybercafe session demand API"})
	})
	router.GET("/health", func(c *gin.Context) {
		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP", "cache": cache.Available()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	reports := router.Group("/reports")
	{
		reports.GET("/demand-prediction", reportsHandler.GetDemandPrediction)
		reports.POST("/demand-model/retrain", middleware.RequireAuth(authService), reportsHandler.RetrainDemandModel)
		reports.GET("/sessions", middleware.RequireAuth(authService), sessionsHandler.GetRecent)
	}

	router.GET("/ws/live", handlers.ModelEventsWebSocket(cache, authService))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s (model artifact: %s)", addr, cfg.Forecast.ModelPath)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
