package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/metrics"
	postgresrepo "chirp/internal/repository/postgres"
	"chirp/internal/service"
	"chirp/internal/transport/http/handlers"
	"chirp/internal/transport/http/middleware"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("connecting to database")
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.WithError(err).Fatal("applying schema")
	}
	log.Info("Connected to database")

	// Metrics
	m := metrics.New()

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	followRepo := postgresrepo.NewFollowRepo(pool)
	tweetRepo := postgresrepo.NewTweetRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	graphService := service.NewGraphService(followRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo)
	feedService := service.NewFeedService(tweetRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(graphService, m, log)
	tweetHandler := handlers.NewTweetHandler(tweetService, feedService, m, log)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Public reads, viewer-aware when a token is present
	mux.Handle("GET /api/v1/tweets", optionalAuth(http.HandlerFunc(tweetHandler.Timeline)))
	mux.Handle("GET /api/v1/tweets/{id}", optionalAuth(http.HandlerFunc(tweetHandler.Get)))
	mux.Handle("GET /api/v1/tweets/{id}/replies", optionalAuth(http.HandlerFunc(tweetHandler.Replies)))
	mux.Handle("GET /api/v1/tweets/user/{id}", optionalAuth(http.HandlerFunc(tweetHandler.ByAuthor)))
	mux.Handle("GET /api/v1/users/{id}", optionalAuth(http.HandlerFunc(userHandler.Get)))

	// Protected - Profile & follow graph
	mux.Handle("GET /api/v1/users/profile", auth(http.HandlerFunc(userHandler.Profile)))
	mux.Handle("PUT /api/v1/users/profile", auth(http.HandlerFunc(userHandler.UpdateProfile)))
	mux.Handle("POST /api/v1/users/follow/{id}", auth(http.HandlerFunc(userHandler.Follow)))
	mux.Handle("POST /api/v1/users/unfollow/{id}", auth(http.HandlerFunc(userHandler.Unfollow)))

	// Protected - Tweets & engagement
	mux.Handle("POST /api/v1/tweets", auth(http.HandlerFunc(tweetHandler.Create)))
	mux.Handle("PUT /api/v1/tweets/like/{id}", auth(http.HandlerFunc(tweetHandler.Like)))
	mux.Handle("PUT /api/v1/tweets/retweet/{id}", auth(http.HandlerFunc(tweetHandler.Retweet)))
	mux.Handle("POST /api/v1/tweets/{id}/replies", auth(http.HandlerFunc(tweetHandler.Reply)))

	// Start server with CORS and request metrics
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.WithField("addr", addr).Info("Starting server")
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(middleware.Metrics(m)(mux))))
}
