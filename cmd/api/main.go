package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interview-prep-backend/config"
	_ "interview-prep-backend/docs" // Important for Swagger
	"interview-prep-backend/internal/delivery/http/middleware"
	v1 "interview-prep-backend/internal/delivery/http/v1"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/repository/memory"
	"interview-prep-backend/internal/repository/postgres"
	redisrepo "interview-prep-backend/internal/repository/redis"
	"interview-prep-backend/internal/usecase"
	"interview-prep-backend/pkg/auth"
	"interview-prep-backend/pkg/database"
	"interview-prep-backend/pkg/leetcode"
	"interview-prep-backend/pkg/llm"
	"interview-prep-backend/pkg/logger"
	pkgredis "interview-prep-backend/pkg/redis"
	"interview-prep-backend/pkg/security"
	"interview-prep-backend/pkg/supabase"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Interview Prep API
// @version         1.0
// @description     Personalized interview practice recommendations backed by a profile store and an LLM.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	logger.Log.Info("Starting interview prep backend", "port", cfg.Port, "env", cfg.Environment)

	secLogger := security.NewSecurityLogger("interview-prep-backend", cfg.Environment)
	defer func() { _ = secLogger.Sync() }()

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = pkgredis.New(ctx, pkgredis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		if !errors.Is(err, pkgredis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// 5. Setup External Clients
	identity, err := supabase.NewClient(supabase.Config{URL: cfg.SupabaseUrl, AnonKey: cfg.SupabaseKey})
	if err != nil {
		logger.Log.Error("Failed to create identity client", "error", err)
		os.Exit(1)
	}

	completer, err := llm.New(ctx, llm.Config{
		Provider: llm.Provider(cfg.LLMProvider),
		OpenAI:   llm.OpenAIConfig{APIKey: cfg.GroqAPIKey, BaseURL: cfg.GroqBaseURL, Model: cfg.GroqModel},
		Gemini:   llm.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
	})
	if err != nil {
		logger.Log.Error("Failed to create completion client", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Completion provider ready", "provider", cfg.LLMProvider, "model", completer.Model())

	catalog := leetcode.NewClient(cfg.LeetCodeGraphQLURL)

	// 6. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	var draftRepo domain.OnboardingDraftRepository
	if redisClient != nil {
		draftRepo = redisrepo.NewDraftRepository(redisClient, cfg.DraftTTL())
	} else {
		draftRepo = memory.NewDraftRepository(cfg.DraftTTL())
	}

	// 7. Setup UseCases
	validate := usecase.NewValidator()
	loginTracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	}, secLogger)

	gateUC := usecase.NewGateUsecase(identity, profileRepo)
	authUC := usecase.NewAuthUsecase(identity, gateUC, loginTracker, secLogger, validate, cfg.SiteURL)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	onboardingUC := usecase.NewOnboardingUsecase(profileRepo, draftRepo, validate)
	recommendationUC := usecase.NewRecommendationUsecase(profileRepo, completer)
	questionUC := usecase.NewQuestionUsecase(catalog)
	randomUC := usecase.NewRandomUsecase()
	dashboardUC := usecase.NewDashboardUsecase(profileRepo)

	var redisCheck usecase.HealthCheck
	if redisClient != nil {
		redisCheck = func(ctx context.Context) error { return pkgredis.HealthCheck(ctx, redisClient) }
	}
	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
		"redis":    redisCheck,
	})

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:           authUC,
		GateUC:           gateUC,
		ProfileUC:        profileUC,
		OnboardingUC:     onboardingUC,
		RecommendationUC: recommendationUC,
		QuestionUC:       questionUC,
		RandomUC:         randomUC,
		DashboardUC:      dashboardUC,
		HealthUC:         healthUC,
		Auth: middleware.AuthConfig{
			JWTSecret: cfg.SupabaseJWTSecret,
			JWKS:      auth.NewProvider(cfg.SupabaseUrl),
			SecLogger: secLogger,
		},
		RateLimiter: middleware.NewRateLimiter(redisClient, secLogger),
		RateLimits: v1.RateLimits{
			Window:         cfg.RateLimitWindow(),
			AuthLimit:      cfg.RateLimitAuthThreshold,
			RecommendLimit: cfg.RateLimitRecommendThreshold,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
