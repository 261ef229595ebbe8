// Package config reads process-wide configuration from the
// environment. Values are read once at startup and treated as
// immutable for the process lifetime.
package config

import (
	"os"
	"strings"
	"time"
)

// Provider names selectable via TP_PROVIDER.
const (
	ProviderPerplexity = "perplexity"
	ProviderGemini     = "gemini"
)

// Config carries everything the assessment core needs from the host
// environment.
type Config struct {
	Provider     string
	APIKey       string
	Model        string
	BaseURL      string
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
	Debug        bool
}

// Load reads the configuration from environment variables, applying
// defaults where values are unset.
func Load() Config {
	return Config{
		Provider:     getenvDefault("TP_PROVIDER", ProviderPerplexity),
		APIKey:       os.Getenv("PPLX_API_KEY"),
		Model:        os.Getenv("PPLX_MODEL"),
		BaseURL:      os.Getenv("PPLX_BASE_URL"),
		GeminiAPIKey: getGeminiAPIKey(),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		Timeout:      getTimeout(),
		Debug:        strings.EqualFold(os.Getenv("TP_DEBUG"), "true"),
	}
}

// getGeminiAPIKey looks for GEMINI_API_KEY first, then falls back to
// GOOGLE_API_KEY.
func getGeminiAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

func getTimeout() time.Duration {
	raw := os.Getenv("TP_TIMEOUT_SECONDS")
	if raw == "" {
		return 60 * time.Second
	}
	d, err := time.ParseDuration(raw + "s")
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
