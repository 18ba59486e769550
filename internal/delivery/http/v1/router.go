package v1

import (
	"net/http"
	"time"

	"interview-prep-backend/internal/delivery/http/middleware"
	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RateLimits configures the two limiter tiers. A zero Limit disables the tier.
type RateLimits struct {
	Window         time.Duration
	AuthLimit      int
	RecommendLimit int
}

type RouterDeps struct {
	AuthUC           domain.AuthUsecase
	GateUC           domain.GateUsecase
	ProfileUC        domain.ProfileUsecase
	OnboardingUC     domain.OnboardingUsecase
	RecommendationUC domain.RecommendationUsecase
	QuestionUC       domain.QuestionUsecase
	RandomUC         domain.RandomUsecase
	DashboardUC      domain.DashboardUsecase
	HealthUC         usecase.HealthUsecase
	Auth             middleware.AuthConfig
	RateLimiter      *middleware.RateLimiter
	RateLimits       RateLimits
	AllowedOrigins   []string
	Production       bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins, deps.Production)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Production))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", healthHandler(deps.HealthUC))

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authLimited := v1.Group("")
	if deps.RateLimiter != nil && deps.RateLimits.AuthLimit > 0 {
		authLimited.Use(deps.RateLimiter.Middleware(
			middleware.AuthRateLimitConfig(deps.RateLimits.AuthLimit, deps.RateLimits.Window)))
	}

	var recommendLimit []gin.HandlerFunc
	if deps.RateLimiter != nil && deps.RateLimits.RecommendLimit > 0 {
		recommendLimit = append(recommendLimit, deps.RateLimiter.Middleware(
			middleware.RecommendRateLimitConfig(deps.RateLimits.RecommendLimit, deps.RateLimits.Window)))
	}

	// Public routes
	NewQuestionHandler(v1, deps.QuestionUC)
	NewRandomHandler(v1, deps.RandomUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))
	{
		NewAuthHandler(authLimited, protected, deps.AuthUC, deps.GateUC)
		NewProfileHandler(protected, deps.ProfileUC)
		NewOnboardingHandler(v1, protected, deps.OnboardingUC)
		NewRecommendationHandler(protected, deps.RecommendationUC, recommendLimit...)
	}

	// Verified and onboarded users only
	ready := protected.Group("")
	ready.Use(middleware.RequireReady(deps.GateUC))
	{
		NewDashboardHandler(ready, deps.DashboardUC)
	}

	return r
}

// healthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if healthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, ok := healthUC.Check(c.Request.Context())
		if !ok {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Success:   false,
				Message:   "System degraded",
				Data:      status,
				RequestID: c.GetString(string(domain.KeyRequestID)),
			})
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	}
}
