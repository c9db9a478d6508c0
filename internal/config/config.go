package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/yukikurage/workboard-api/internal/constants"
)

type Config struct {
	Port          string
	GinMode       string
	SessionSecret string
	DefaultUserID string
	EmbedBaseURL  string
	LogLevel      string
	LogFormat     string
	LogFile       string
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are used for keys the environment does not set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		DefaultUserID: getEnv("DEFAULT_USER_ID", "user-1"),
		EmbedBaseURL:  getEnv("EMBED_BASE_URL", constants.DefaultEmbedBaseURL),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
