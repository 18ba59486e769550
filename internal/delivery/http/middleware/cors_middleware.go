package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORSMiddleware allows credentialed requests from the configured frontends.
// Without configured origins only local development frontends are allowed,
// and only outside production.
func CORSMiddleware(allowedOrigins []string, production bool) gin.HandlerFunc {
	origins := allowedOrigins
	if len(origins) == 0 && !production {
		origins = devOrigins
	}

	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if len(origins) == 0 {
		// Nothing is allowed; cors.New panics on an empty config.
		cfg.AllowOriginFunc = func(string) bool { return false }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
