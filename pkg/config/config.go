package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server struct {
		Port string
		Env  string
	}

	// Database configuration
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		MaxConns int
	}

	// Discord bot configuration
	Discord struct {
		Token        string
		ChannelID    string
		PollInterval time.Duration
	}

	// Generative-text provider configuration
	AI struct {
		BaseURL   string
		APIKey    string
		Model     string
		RateLimit float64
		RateBurst int
	}

	// Upload storage configuration
	Uploads struct {
		Dir          string
		PublicPrefix string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}
}

var (
	instance *Config
	once     sync.Once
)

// New creates a new Config instance with values from environment variables.
// Uses singleton pattern to ensure only one instance exists.
func New() *Config {
	once.Do(func() {
		// Load .env file if exists
		godotenv.Load()

		instance = &Config{}

		// Server config
		instance.Server.Port = getEnvString("PORT", "3000")
		instance.Server.Env = getEnvString("APP_ENV", "development")

		// Database config
		instance.Database.Host = getEnvString("DB_HOST", "localhost")
		instance.Database.Port = getEnvString("DB_PORT", "5432")
		instance.Database.User = getEnvString("DB_USER", "postgres")
		instance.Database.Password = getEnvString("DB_PASSWORD", "postgres")
		instance.Database.Name = getEnvString("DB_NAME", "macro-news")
		instance.Database.SSLMode = getEnvString("DB_SSL_MODE", "disable")
		instance.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 20)

		// Discord config
		instance.Discord.Token = getEnvString("DISCORD_TOKEN", "")
		instance.Discord.ChannelID = getEnvString("DISCORD_CHANNEL_ID", "")
		instance.Discord.PollInterval = getEnvDuration("DISCORD_POLL_INTERVAL", 5*time.Second)

		// AI provider config
		instance.AI.BaseURL = getEnvString("AI_BASE_URL", "https://generativelanguage.googleapis.com")
		instance.AI.APIKey = getEnvString("AI_API_KEY", "")
		instance.AI.Model = getEnvString("AI_MODEL", "gemini-1.5-flash")
		instance.AI.RateLimit = getEnvFloat("AI_RATE_LIMIT", 5)
		instance.AI.RateBurst = getEnvInt("AI_RATE_BURST", 10)

		// Upload config
		instance.Uploads.Dir = getEnvString("UPLOAD_DIR", "public/files")
		instance.Uploads.PublicPrefix = getEnvString("UPLOAD_PUBLIC_PREFIX", "/files")

		// Logging config
		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "json")
	})

	return instance
}

// Get returns the singleton Config instance
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
