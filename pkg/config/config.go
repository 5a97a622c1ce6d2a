package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	GeminiAPIKey string
	GeminiModel  string

	// Scoring options. Weights must sum to 1.0; validated on Load.
	LexicalWeight       float64
	AIWeight            float64
	AITimeoutMs         int
	LowConfidenceTokens int

	LogJSON bool
	Debug   bool
}

// Load reads environment variables, optionally from a .env file if present,
// and validates the scoring options. A configuration error here aborts
// startup: a misweighted blend would silently skew every score.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "resume-scorer"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		LexicalWeight:       getEnvFloat("LEXICAL_WEIGHT", 0.4),
		AIWeight:            getEnvFloat("AI_WEIGHT", 0.6),
		AITimeoutMs:         getEnvInt("AI_TIMEOUT_MS", 8000),
		LowConfidenceTokens: getEnvInt("LOW_CONFIDENCE_TOKENS", 10),

		LogJSON: getEnvBool("LOG_JSON", false),
		Debug:   getEnvBool("DEBUG", false),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the scoring-related options.
func (c Config) Validate() error {
	if c.LexicalWeight < 0 || c.AIWeight < 0 {
		return fmt.Errorf("score weights must be non-negative: lexical=%v ai=%v", c.LexicalWeight, c.AIWeight)
	}
	if math.Abs(c.LexicalWeight+c.AIWeight-1.0) > 1e-6 {
		return fmt.Errorf("score weights must sum to 1.0: lexical=%v ai=%v", c.LexicalWeight, c.AIWeight)
	}
	if c.AITimeoutMs <= 0 {
		return fmt.Errorf("AI_TIMEOUT_MS must be positive, got %d", c.AITimeoutMs)
	}
	if c.LowConfidenceTokens < 0 {
		return fmt.Errorf("LOW_CONFIDENCE_TOKENS must not be negative, got %d", c.LowConfidenceTokens)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
