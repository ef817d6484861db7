package config

import (
	"os"
	"strings"
)

// Config holds CLI configuration read from the environment. Flags override
// these values.
type Config struct {
	// Format is the default encoder name (xml, json, form).
	Format     string
	LogLevel   string
	LogFormat  string
	CatalogDir string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Format:     strings.ToLower(getEnv("PAYGATE_FORMAT", "xml")),
		LogLevel:   strings.ToLower(getEnv("PAYGATE_LOG_LEVEL", "warn")),
		LogFormat:  strings.ToLower(getEnv("PAYGATE_LOG_FORMAT", "json")),
		CatalogDir: getEnv("PAYGATE_CATALOG_DIR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
