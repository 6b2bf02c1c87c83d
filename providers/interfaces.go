package providers

import (
	"context"
	"time"

	"agroio.app/metrics"
	"agroio.app/models"
	"agroio.app/providers/cache"
)

// ForecastProvider defines the interface for daily forecast providers
type ForecastProvider interface {
	GetForecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherDay, error)
}

// ImageGenerator produces a catalog image for a textual description.
// The returned string is a data URL or a plain image URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// PlantDiagnoser analyzes a plant photo and returns a Markdown report
type PlantDiagnoser interface {
	DiagnosePlant(ctx context.Context, image []byte, mimeType string) (string, error)
}

// GardenPlanner generates a garden layout from the wizard's collected data
type GardenPlanner interface {
	GenerateGardenPlan(ctx context.Context, prompt string, photo []byte) (description string, imageURL string, err error)
}

// AIProvider groups every generative capability the application uses
type AIProvider interface {
	ImageGenerator
	PlantDiagnoser
	GardenPlanner
}

// Cache is an alias to avoid circular imports
type Cache = cache.GenericCacheInterface

// FileLogger defines the interface for file logging operations
type FileLogger interface {
	LogRequest(providerName string, latitude, longitude float64)
	LogResponse(providerName string, latitude, longitude float64, days int, duration time.Duration)
	LogError(providerName string, latitude, longitude float64, err error, duration time.Duration)
}

// ForecastMetrics exposes cache statistics for monitoring endpoints
type ForecastMetrics interface {
	GetCacheMetrics() *metrics.CacheMetrics
}
