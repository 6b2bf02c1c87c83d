package providers

import (
	"context"
	"testing"
	"time"

	"agroio.app/providers/cache"
)

// This test verifies that the generic cache architecture works correctly
func TestInstrumentedCacheIntegration(t *testing.T) {
	// Create memory cache
	memCache := cache.NewMemoryCache()

	// Create instrumented cache
	instrumentedCache := NewInstrumentedCache(memCache, "memory")

	// Test basic operations
	key := "test:forecast:rome"
	testData := []byte(`[{"day":"Oggi","temp":25,"condition":"Sunny"}]`)

	// Test Set and Get
	instrumentedCache.Set(context.Background(), key, testData, time.Minute)
	result, found := instrumentedCache.Get(context.Background(), key)

	if !found {
		t.Error("Expected to find cached data")
	}

	if string(result) != string(testData) {
		t.Errorf("Expected %s, got %s", string(testData), string(result))
	}

	// Test Add dedup passthrough
	if added := instrumentedCache.Add(context.Background(), "alert:test", []byte("sent"), time.Minute); !added {
		t.Error("Expected first Add to store the key")
	}
	if added := instrumentedCache.Add(context.Background(), "alert:test", []byte("sent"), time.Minute); added {
		t.Error("Expected second Add to be rejected")
	}

	// Verify metrics are collected
	metrics := instrumentedCache.GetCacheMetrics()
	stats := metrics.GetStats()

	if stats["total"].(int64) < 1 {
		t.Error("Expected metrics to be recorded")
	}

	if stats["hits"].(int64) < 1 {
		t.Error("Expected at least one cache hit")
	}
}
