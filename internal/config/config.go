package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dishoutapp/dishout/internal/kvstore"
)

// Config holds everything the server reads from the environment. Values
// carry sensible development defaults; only the Gemini key has no default.
type Config struct {
	Port          string
	MaxUploadSize int64

	GeminiAPIKey string
	GeminiModel  string

	UploadEndpoint string
	LeadsEndpoint  string

	FallbackArea string
	PolicyPath   string

	DB kvstore.Config
}

// FromEnv assembles the configuration from environment variables. Callers
// load .env files before calling this.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		UploadEndpoint: os.Getenv("UPLOAD_ENDPOINT"),
		LeadsEndpoint:  os.Getenv("LEADS_ENDPOINT"),
		FallbackArea:   getenv("FALLBACK_AREA", "Dubai"),
		PolicyPath:     os.Getenv("POLICY_PATH"),
	}

	maxUploadStr := getenv("MAX_UPLOAD_SIZE", "10485760")
	maxUpload, err := strconv.ParseInt(maxUploadStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}
	cfg.MaxUploadSize = maxUpload

	cfg.DB.Type = getenv("DB_TYPE", "sqlite")
	if cfg.DB.Type == "postgres" {
		cfg.DB.Host = getenv("DB_HOST", "localhost")
		portStr := getenv("DB_PORT", "5432")
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT: %w", err)
		}
		cfg.DB.Port = port
		cfg.DB.User = getenv("DB_USER", "dishout")
		cfg.DB.Password = getenv("DB_PASSWORD", "dishout_dev")
		cfg.DB.Name = getenv("DB_NAME", "dishout")
	} else {
		cfg.DB.SQLitePath = getenv("DB_PATH", "./dishout.db")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
