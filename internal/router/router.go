package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"neurobud-backend/internal/handlers"
	"neurobud-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	redisClient *redis.Client,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	moodHandler *handlers.MoodHandler,
	feedbackHandler *handlers.FeedbackHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	adminHandler *handlers.AdminHandler,
	corsOrigins string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(corsOrigins))

	// Per-IP rate limits
	authLimiter := middleware.NewRateLimiter(redisClient, "auth", 10, time.Minute)
	chatLimiter := middleware.NewRateLimiter(redisClient, "chat", 20, time.Minute)
	moodLimiter := middleware.NewRateLimiter(redisClient, "mood", 10, time.Minute)

	// Health check
	r.Get("/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/me", authHandler.GetMe)
			})
		})

		// ──── Chat Routes (guests allowed; identity pins A/B bucket) ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.With(chatLimiter.Middleware).Post("/chat", chatHandler.Chat)
			r.Get("/conversations/{id}/messages", chatHandler.History)
			r.Post("/messages/{id}/feedback", feedbackHandler.Rate)
		})

		// ──── Mood Routes ────
		r.Route("/mood", func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.With(moodLimiter.Middleware).Post("/", moodHandler.Log)
			r.Get("/history", moodHandler.History)
		})

		// ──── Analytics ────
		r.Get("/analytics", analyticsHandler.Get)

		// ──── Admin Routes ────
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireAdmin)
			r.Post("/cleanup", adminHandler.Cleanup)
		})
	})

	return r
}
