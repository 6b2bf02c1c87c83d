package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"agroio.app/models"
)

// GenericCacheInterface defines generic cache operations
type GenericCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Add stores the value only when the key is absent and reports whether
	// it was stored. Used for once-per-day alert deduplication.
	Add(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// ForecastCacheInterface defines the interface for forecast caching operations
type ForecastCacheInterface interface {
	Get(key string) ([]models.WeatherDay, bool)
	Set(key string, value []models.WeatherDay, ttl time.Duration)
	Delete(key string)
	Clear()
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

type MemoryCache struct {
	data   map[string]cacheEntry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryCache() GenericCacheInterface {
	cache := &MemoryCache{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go cache.cleanup()
	return cache
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (c *MemoryCache) Add(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if value == nil {
		return false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, exists := c.data[key]; exists && time.Now().Before(entry.ExpiresAt) {
		return false
	}

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
	return true
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

// ForecastCache wraps a generic cache with forecast-specific operations
type ForecastCache struct {
	cache GenericCacheInterface
}

func NewForecastCache(cache GenericCacheInterface) ForecastCacheInterface {
	return &ForecastCache{
		cache: cache,
	}
}

// ForecastKey builds the cache key for a pair of coordinates
func ForecastKey(latitude, longitude float64) string {
	return fmt.Sprintf("forecast:%.4f:%.4f", latitude, longitude)
}

func (f *ForecastCache) Get(key string) ([]models.WeatherDay, bool) {
	data, found := f.cache.Get(context.Background(), key)
	if !found {
		return nil, false
	}

	var days []models.WeatherDay
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, false
	}

	return days, true
}

func (f *ForecastCache) Set(key string, value []models.WeatherDay, ttl time.Duration) {
	if value == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	f.cache.Set(context.Background(), key, data, ttl)
}

func (f *ForecastCache) Delete(key string) {
	f.cache.Delete(context.Background(), key)
}

func (f *ForecastCache) Clear() {
	f.cache.Clear(context.Background())
}

func (c *MemoryCache) cleanup() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
}
