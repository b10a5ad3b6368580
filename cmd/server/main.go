package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neurobud-backend/internal/config"
	"neurobud-backend/internal/database"
	"neurobud-backend/internal/handlers"
	"neurobud-backend/internal/middleware"
	"neurobud-backend/internal/repository"
	"neurobud-backend/internal/router"
	"neurobud-backend/internal/services"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Println("✅ Connected to PostgreSQL")

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("✅ Migrations applied")

	// Redis
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("✅ Connected to Redis")

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	conversationRepo := repository.NewConversationRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)
	crisisRepo := repository.NewCrisisRepo(pool)
	costRepo := repository.NewCostRepo(pool)
	modelResponseRepo := repository.NewModelResponseRepo(pool)
	moodRepo := repository.NewMoodRepo(pool)

	// Auth
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, jwtAuth)

	// Chat pipeline
	detector := services.NewCrisisDetector()
	modelRouter := services.NewModelRouter(services.RouterConfig{
		BaseModel:        cfg.BaseModel,
		FineTunedModelID: cfg.FineTunedModelID,
		ABTestingEnabled: cfg.ABTestingEnabled,
		SplitRatio:       cfg.ABTestSplit,
	})
	calculator := services.NewCostCalculator(services.PricingConfig{
		BaseInputPrice:       cfg.BaseInputPrice,
		BaseOutputPrice:      cfg.BaseOutputPrice,
		FineTunedInputPrice:  cfg.FineTunedInputPrice,
		FineTunedOutputPrice: cfg.FineTunedOutputPrice,
		EmbeddingPrice:       cfg.EmbeddingPrice,
		FineTuneTrainPrice:   cfg.FineTuneTrainPrice,
	})
	provider := services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAITimeoutSeconds)
	chatService := services.NewChatService(detector, modelRouter, calculator, provider)
	recorder := services.NewTurnRecorder(messageRepo, crisisRepo, costRepo, modelResponseRepo)

	// Retention
	retention := services.NewRetentionScheduler(conversationRepo, cfg.RetentionDays)
	retention.Start()
	defer retention.Stop()

	// Handlers
	healthHandler := handlers.NewHealthHandler(pool)
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(conversationRepo, messageRepo, chatService, recorder)
	moodHandler := handlers.NewMoodHandler(moodRepo)
	feedbackHandler := handlers.NewFeedbackHandler(modelResponseRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(pool)
	adminHandler := handlers.NewAdminHandler(retention)

	r := router.New(
		jwtAuth,
		redisClient,
		healthHandler,
		authHandler,
		chatHandler,
		moodHandler,
		feedbackHandler,
		analyticsHandler,
		adminHandler,
		cfg.CORSOrigins,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s (env: %s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
