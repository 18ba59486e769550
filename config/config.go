package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Environment       string
	DBUrl             string
	SupabaseUrl       string
	SupabaseKey       string
	SupabaseJWTSecret string
	SiteURL           string // base of email redirect links
	AllowedOrigins    []string
	// Redis/Upstash Configuration
	RedisURL      string
	RedisPassword string
	// Completion service
	LLMProvider  string
	GroqAPIKey   string
	GroqModel    string
	GroqBaseURL  string
	GeminiAPIKey string
	GeminiModel  string
	// Problem catalog
	LeetCodeGraphQLURL string
	// Rate Limiting Configuration
	RateLimitWindowSeconds      int
	RateLimitAuthThreshold      int
	RateLimitRecommendThreshold int
	FailedLoginBlockMinutes     int
	FailedLoginMaxAttempts      int
	// Onboarding drafts
	DraftTTLHours int
}

var ErrMissingSupabase = errors.New("Missing Supabase env vars: set SUPABASE_URL and SUPABASE_ANON_KEY")

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: environment(),
		DBUrl:       getEnv("DATABASE_URL", ""),
		// Trim the trailing slash to avoid double slashes (e.g. .co//auth)
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:       getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		SiteURL:           strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		// Redis/Upstash Configuration
		RedisURL:      getEnv("REDIS_URL", getEnv("UPSTASH_REDIS_URL", "")),
		RedisPassword: getEnv("REDIS_PASSWORD", getEnv("UPSTASH_REDIS_PASSWORD", "")),
		// Completion service
		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		GroqModel:    getEnv("GROQ_MODEL", "llama3-70b-8192"),
		GroqBaseURL:  getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		// Problem catalog
		LeetCodeGraphQLURL: getEnv("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:      getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:      getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitRecommendThreshold: getEnvInt("RATE_LIMIT_RECOMMEND_THRESHOLD", 10),
		FailedLoginBlockMinutes:     getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:      getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
		DraftTTLHours:               getEnvInt("ONBOARDING_DRAFT_TTL_HOURS", 720),
	}

	if cfg.SupabaseUrl == "" || cfg.SupabaseKey == "" {
		return nil, ErrMissingSupabase
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and drafts will use in-memory fallback.")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.DraftTTLHours) * time.Hour
}

func environment() string {
	if env := getEnv("APP_ENV", ""); env != "" {
		return strings.ToLower(env)
	}
	if getEnv("GIN_MODE", "") == "release" {
		return "production"
	}
	return "development"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
