package config

import (
	"os"
)

// Config holds application configuration values.
type Config struct {
	DBDSN          string
	HTTPAddr       string
	BaseURL        string
	UploadDir      string
	FrontendOrigin string
}

// Load reads configuration from environment variables with reasonable
// defaults. DB_DSN has no default; the caller decides how hard to fail.
func Load() Config {
	cfg := Config{
		DBDSN:          os.Getenv("DB_DSN"),
		HTTPAddr:       ":" + envOr("HTTP_PORT", "8080"),
		BaseURL:        envOr("BASE_URL", "http://localhost:8080"),
		UploadDir:      envOr("UPLOAD_DIR", "./uploads"),
		FrontendOrigin: envOr("FRONTEND_ORIGIN", "http://localhost:5173"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
