package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	TokenTTL     time.Duration
	AuthPassword string
	CORSOrigins  []string
	GeminiAPIKey string
	GeminiBase   string
	GeminiModel  string
}

func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "./data/zenfocus.db"),
		JWTSecret:    getEnv("JWT_SECRET", "change-this-secret"),
		TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		AuthPassword: getEnv("AUTH_PASSWORD", ""),
		CORSOrigins:  getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiBase:   getEnv("GEMINI_BASE_URL", defaultGeminiBaseURL),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
