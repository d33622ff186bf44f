package config

import (
	"os"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Groq (OpenAI-compatible) completion API
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// Africa's Talking SMS gateway
	ATUsername string
	ATAPIKey   string
	ATBaseURL  string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./learneasy.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
		GroqModel:      getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		ATUsername:     getEnv("AT_USERNAME", ""),
		ATAPIKey:       getEnv("AT_API_KEY", ""),
		ATBaseURL:      getEnv("AT_BASE_URL", "https://api.africastalking.com"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
