package providers

import (
	"context"
	"log/slog"
	"time"

	"agroio.app/models"
	"agroio.app/providers/cache"
)

type ForecastCacheProxy struct {
	realProvider ForecastProvider
	cache        cache.ForecastCacheInterface
	cacheTTL     time.Duration
}

// NewForecastCacheProxy wraps a forecast provider with read-through caching
// keyed by coordinates.
func NewForecastCacheProxy(realProvider ForecastProvider, cache cache.ForecastCacheInterface, cacheTTL time.Duration) ForecastProvider {
	return &ForecastCacheProxy{
		realProvider: realProvider,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func (p *ForecastCacheProxy) GetForecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherDay, error) {
	cacheKey := cache.ForecastKey(latitude, longitude)

	if cachedDays, found := p.cache.Get(cacheKey); found {
		slog.Info("forecast cache hit", "lat", latitude, "lon", longitude)
		return cachedDays, nil
	}

	slog.Info("forecast cache miss", "lat", latitude, "lon", longitude)

	days, err := p.realProvider.GetForecast(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}

	p.cache.Set(cacheKey, days, p.cacheTTL)

	return days, nil
}
