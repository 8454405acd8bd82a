// Package main is the entrypoint for the Altiq API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/altiq/altiq/internal/auth"
	"github.com/altiq/altiq/internal/cache"
	"github.com/altiq/altiq/internal/config"
	"github.com/altiq/altiq/internal/handler"
	"github.com/altiq/altiq/internal/middleware"
	"github.com/altiq/altiq/internal/payment"
	"github.com/altiq/altiq/internal/repository"
	"github.com/altiq/altiq/internal/server"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database; a missing store is fatal rather than
	// something to serve traffic around.
	repo, err := repository.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to MongoDB", "database", cfg.MongoDB)

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize session codec and payment client
	codec := auth.NewCodec(cfg.JWTSecret, cfg.SessionTTL)
	stripeClient := payment.NewStripeClient(cfg.StripeSecretKey)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	sessionHandler := handler.NewSessionHandler(codec, logger, cfg.IsProduction())
	queryHandler := handler.NewQueryHandler(repo, logger)
	recommendationHandler := handler.NewRecommendationHandler(repo, logger)
	paymentHandler := handler.NewPaymentHandler(stripeClient, repo, logger)

	// Setup router
	r := setupRouter(
		h,
		healthHandler,
		sessionHandler,
		queryHandler,
		recommendationHandler,
		paymentHandler,
		codec,
		cacheClient,
		cfg,
		logger,
	)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("mongodb", repo.Close)
	srv.OnShutdown("redis", func(context.Context) error { return cacheClient.Close() })

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	sessionHandler *handler.SessionHandler,
	queryHandler *handler.QueryHandler,
	recommendationHandler *handler.RecommendationHandler,
	paymentHandler *handler.PaymentHandler,
	codec *auth.Codec,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Liveness string
	r.Get("/", h.Hello)

	sessionCfg := middleware.SessionConfig{
		Logger: logger,
		Codec:  codec,
	}
	guard := middleware.Session(sessionCfg)
	ownsEmail := middleware.RequireOwner("email")

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:       logger,
		Cache:        cacheClient,
		LoginEnabled: cfg.RateLimitLoginEnabled,
		LoginRPS:     cfg.RateLimitLoginRPS,
		LoginBurst:   cfg.RateLimitLoginBurst,
	}

	// Session endpoints
	r.With(middleware.RateLimitLogin(rateLimitCfg)).Post("/jwt", sessionHandler.IssueToken)
	r.Post("/logout", sessionHandler.Logout)

	// Queries
	r.Get("/queries", queryHandler.List)
	r.Get("/queries/{id}", queryHandler.Get)
	r.Put("/queries/{id}", queryHandler.Update)
	r.Delete("/queries/{id}", queryHandler.Delete)
	r.Post("/addqueries", queryHandler.Create)
	r.Patch("/myrecqueries/{id}", queryHandler.Increment)
	r.Patch("/queiresdec/{id}", queryHandler.Decrement)
	r.With(guard, ownsEmail).Get("/myqueries/{email}", queryHandler.ListByOwner)

	// Recommendations
	r.Post("/recommendations", recommendationHandler.Create)
	r.Get("/recommendations", recommendationHandler.List)
	r.Get("/recommendations/{id}", recommendationHandler.ListByQuery)
	r.Delete("/recommendations/{id}", recommendationHandler.Delete)
	r.With(guard, ownsEmail).Get("/myrecommendations/{email}", recommendationHandler.ListByRecommender)
	r.With(guard, ownsEmail).Get("/recommendationme/{email}", recommendationHandler.ListForUser)

	// Payments
	r.Post("/create-payment-intent", paymentHandler.CreateIntent)
	r.Post("/payments", paymentHandler.Record)
	r.With(guard, ownsEmail).Get("/payments/{email}", paymentHandler.ListByOwner)

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
