package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	ServerPort string

	// Assistant (Gemini)
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	// Auth
	JWTSecret string

	// Station registry; empty means the built-in table
	StationsFile string

	// Simulated latency before search results are delivered
	SearchLatency time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		JWTSecret: getEnv("JWT_SECRET", "railconnect-demo-secret"),

		StationsFile: os.Getenv("STATIONS_FILE"),

		SearchLatency: time.Duration(getEnvInt("SEARCH_LATENCY_MS", 1500)) * time.Millisecond,
	}

	// A missing key is a valid configuration state: the assistant degrades to
	// an offline notice instead of calling out.
	if config.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set, assistant will reply with an offline notice")
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
