package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"agroio.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Host: %s\n", cfg.Database.Host)
	log.Printf("  Port: %d\n", cfg.Database.Port)
	log.Printf("  User: %s\n", cfg.Database.User)
	log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
	log.Printf("  Name: %s\n", cfg.Database.Name)
	log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)

	log.Printf("\nWEATHER:\n")
	log.Printf("  Base URL: %s\n", cfg.Weather.BaseURL)
	log.Printf("  Forecast Days: %d\n", cfg.Weather.ForecastDays)
	log.Printf("  Fallback Coordinates: %.4f, %.4f\n", cfg.Weather.FallbackLatitude, cfg.Weather.FallbackLongitude)
	log.Printf("  Cache Enabled: %t (TTL %d minutes)\n", cfg.Weather.EnableCache, cfg.Weather.CacheTTLMinutes)

	log.Printf("\nAI:\n")
	log.Printf("  API Key: %s\n", cd.maskString(cfg.AI.APIKey))
	log.Printf("  Text Model: %s\n", cfg.AI.TextModel)
	log.Printf("  Image Model: %s\n", cfg.AI.ImageModel)

	log.Printf("\nCACHE:\n")
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	if cfg.Cache.Type == "redis" {
		log.Printf("  Redis Addr: %s\n", cfg.Cache.Redis.Addr)
		log.Printf("  Redis DB: %d\n", cfg.Cache.Redis.DB)
	}

	log.Printf("\nSESSION:\n")
	log.Printf("  TTL: %d hours\n", cfg.Session.TTLHours)

	log.Printf("\nSCHEDULER:\n")
	log.Printf("  Alert Interval: %d minutes\n", cfg.Scheduler.AlertIntervalMinutes)
	log.Printf("  Cleanup Interval: %d minutes\n", cfg.Scheduler.CleanupIntervalMinutes)

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		log.Printf("%s=%s\n", key, value)
	}

	log.Println("===============================")
}

// maskString masks sensitive information like passwords and API keys
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// isSensitive checks if an environment variable key is considered sensitive
func (cd *ConfigDisplayer) isSensitive(key string) bool {
	sensitiveKeys := []string{
		"API_KEY", "PASSWORD", "SECRET", "TOKEN", "KEY", "PASS", "PWD",
	}

	key = strings.ToUpper(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}

	return false
}
