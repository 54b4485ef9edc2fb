package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	GoogleProject     string
	GoogleRegion      string
	GeminiAPIKey      string
	GeminiBaseURL     string
	TextModel         string
	ImageModel        string
	OutputDir         string
	RunHistoryLimit   int
	CORSOrigins       []string
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	GenerateRateLimit int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. A missing Google Cloud project or API credential is
// deliberately not an error here: the gateway degrades into an unavailable
// state instead of preventing the process from starting.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		GoogleProject:     os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GoogleRegion:      getEnv("GOOGLE_CLOUD_REGION", "us-central1"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:     os.Getenv("GEMINI_BASE_URL"),
		TextModel:         getEnv("MODEL_TEXT", "gemini-2.0-flash-lite"),
		ImageModel:        getEnv("MODEL_IMAGE", "gemini-2.5-flash-image"),
		OutputDir:         getEnv("OUTPUT_DIR", "output"),
		RunHistoryLimit:   getEnvInt("RUN_HISTORY_LIMIT", 32),
		CORSOrigins:       splitCSV(os.Getenv("CORS_ORIGINS")),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		GenerateRateLimit: getEnvInt("GENERATE_RATE_LIMIT_PER_MINUTE", 6),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
