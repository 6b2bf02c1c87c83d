package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"agroio.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	AI        AIConfig        `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Session   SessionConfig   `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"agroio"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// WeatherConfig contains settings for the forecast provider
type WeatherConfig struct {
	BaseURL           string  `envconfig:"WEATHER_BASE_URL" default:"https://api.open-meteo.com/v1"`
	ForecastDays      int     `envconfig:"WEATHER_FORECAST_DAYS" default:"7"`
	FallbackLatitude  float64 `envconfig:"WEATHER_FALLBACK_LAT" default:"41.9028"`
	FallbackLongitude float64 `envconfig:"WEATHER_FALLBACK_LON" default:"12.4964"`
	CacheTTLMinutes   int     `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"30"`
	EnableCache       bool    `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	EnableLogging     bool    `envconfig:"WEATHER_ENABLE_LOGGING" default:"false"`
	LogFilePath       string  `envconfig:"WEATHER_LOG_FILE_PATH" default:"forecast_requests.log"`
}

// AIConfig contains settings for the generative AI provider. An empty API
// key disables generation and every AI feature degrades to its fallback.
type AIConfig struct {
	APIKey     string `envconfig:"AI_API_KEY" default:""`
	TextModel  string `envconfig:"AI_TEXT_MODEL" default:"gemini-2.5-flash"`
	ImageModel string `envconfig:"AI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
}

// Enabled reports whether generative AI calls are configured
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// CacheConfig selects the cache backend
type CacheConfig struct {
	Type  string      `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// SessionConfig controls session token lifetime
type SessionConfig struct {
	TTLHours int `envconfig:"SESSION_TTL_HOURS" default:"168"`
}

// SchedulerConfig contains settings for the background task scheduler
type SchedulerConfig struct {
	AlertIntervalMinutes   int `envconfig:"ALERT_INTERVAL" default:"60"`
	CleanupIntervalMinutes int `envconfig:"CLEANUP_INTERVAL" default:"1440"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks forecast provider configuration
func (w *WeatherConfig) Validate() error {
	if w.BaseURL == "" {
		return errors.NewConfigurationError("WEATHER_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_BASE_URL must start with http:// or https://", nil)
	}
	if w.ForecastDays < 1 || w.ForecastDays > 16 {
		return errors.NewConfigurationError("WEATHER_FORECAST_DAYS must be between 1 and 16", nil)
	}
	if w.FallbackLatitude < -90 || w.FallbackLatitude > 90 {
		return errors.NewConfigurationError("WEATHER_FALLBACK_LAT must be between -90 and 90", nil)
	}
	if w.FallbackLongitude < -180 || w.FallbackLongitude > 180 {
		return errors.NewConfigurationError("WEATHER_FALLBACK_LON must be between -180 and 180", nil)
	}
	if w.CacheTTLMinutes < 1 {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.Type == "redis" {
		return c.Redis.Validate()
	}
	return nil
}

// Validate checks redis configuration
func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > 15 {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

// Validate checks session configuration
func (s *SessionConfig) Validate() error {
	if s.TTLHours < 1 {
		return errors.NewConfigurationError("SESSION_TTL_HOURS must be at least 1 hour", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.AlertIntervalMinutes < 1 {
		return errors.NewConfigurationError("ALERT_INTERVAL must be at least 1 minute", nil)
	}
	if s.AlertIntervalMinutes > 1440 {
		return errors.NewConfigurationError("ALERT_INTERVAL cannot exceed 1440 minutes (24 hours)", nil)
	}
	if s.CleanupIntervalMinutes < 1 {
		return errors.NewConfigurationError("CLEANUP_INTERVAL must be at least 1 minute", nil)
	}
	if s.CleanupIntervalMinutes > 10080 {
		return errors.NewConfigurationError("CLEANUP_INTERVAL cannot exceed 10080 minutes (7 days)", nil)
	}
	return nil
}
