package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroio.app/config"
	apperrors "agroio.app/errors"
	"agroio.app/models"
	"agroio.app/providers/cache"
)

func TestOpenMeteoProvider_GetForecast(t *testing.T) {
	t.Run("ValidForecastResponse", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/forecast")
			query := r.URL.Query()
			assert.Equal(t, "41.9028", query.Get("latitude"))
			assert.Equal(t, "12.4964", query.Get("longitude"))
			assert.Equal(t, "7", query.Get("forecast_days"))
			assert.Equal(t, "auto", query.Get("timezone"))
			assert.Contains(t, query.Get("daily"), "weather_code")
			assert.Contains(t, query.Get("daily"), "precipitation_probability_max")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"daily": {
					"time": ["2026-08-28", "2026-08-29", "2026-08-30"],
					"weather_code": [0, 61, 2],
					"temperature_2m_max": [28.6, 22.3, 24.0],
					"temperature_2m_min": [17.4, 15.8, 16.1],
					"wind_speed_10m_max": [12.2, 18.7, 34.9],
					"relative_humidity_2m_mean": [48.5, 72.1, 60.0],
					"precipitation_probability_max": [5, 80, 20]
				}
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.WeatherConfig{
			BaseURL:      mockServer.URL,
			ForecastDays: 7,
		})

		days, err := provider.GetForecast(context.Background(), 41.9028, 12.4964)

		assert.NoError(t, err)
		require.Len(t, days, 3)

		// 2026-08-28 is a Friday, so the third day (Sunday) is "Dom"
		assert.Equal(t, "Oggi", days[0].Day)
		assert.Equal(t, "Domani", days[1].Day)
		assert.Equal(t, "Dom", days[2].Day)

		assert.Equal(t, models.ConditionSunny, days[0].Condition)
		assert.Equal(t, models.ConditionRain, days[1].Condition)
		// Code 2 would be Cloudy but 34.9 km/h wind overrides to Windy
		assert.Equal(t, models.ConditionWindy, days[2].Condition)

		assert.Equal(t, 29, days[0].Temp)
		assert.Equal(t, 17, days[0].TempMin)
		assert.Equal(t, 12, days[0].Wind)
		assert.Equal(t, 49, days[0].Humidity)
		assert.Equal(t, 5, days[0].RainChance)
		assert.Equal(t, 80, days[1].RainChance)
	})

	t.Run("InvalidCoordinates", func(t *testing.T) {
		provider := NewOpenMeteoProvider(&config.WeatherConfig{
			BaseURL:      "https://api.example.com",
			ForecastDays: 7,
		})

		days, err := provider.GetForecast(context.Background(), 95, 0)

		assert.Error(t, err)
		assert.Nil(t, days)

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ValidationError, appErr.Type)
	})

	t.Run("ServerError", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.WeatherConfig{
			BaseURL:      mockServer.URL,
			ForecastDays: 7,
		})

		days, err := provider.GetForecast(context.Background(), 41.9, 12.5)

		assert.Error(t, err)
		assert.Nil(t, days)

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
	})

	t.Run("InvalidJSONResponse", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`invalid json`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.WeatherConfig{
			BaseURL:      mockServer.URL,
			ForecastDays: 7,
		})

		days, err := provider.GetForecast(context.Background(), 41.9, 12.5)

		assert.Error(t, err)
		assert.Nil(t, days)
	})

	t.Run("EmptyForecast", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{"daily": {"time": []}}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.WeatherConfig{
			BaseURL:      mockServer.URL,
			ForecastDays: 7,
		})

		days, err := provider.GetForecast(context.Background(), 41.9, 12.5)

		assert.Error(t, err)
		assert.Nil(t, days)
	})
}

func TestMapCondition(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wind     float64
		expected models.WeatherCondition
	}{
		{"ClearSky", 0, 10, models.ConditionSunny},
		{"PartlyCloudy", 2, 10, models.ConditionCloudy},
		{"Fog", 45, 10, models.ConditionCloudy},
		{"Drizzle", 53, 10, models.ConditionRain},
		{"RainShowers", 81, 10, models.ConditionRain},
		{"Thunderstorm", 95, 10, models.ConditionRain},
		{"UnknownCodeDefaultsCloudy", 42, 10, models.ConditionCloudy},
		{"StrongWindOverridesSunny", 0, 35, models.ConditionWindy},
		{"StrongWindOverridesRain", 61, 31, models.ConditionWindy},
		{"BorderlineWindDoesNotOverride", 0, 30, models.ConditionSunny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapCondition(tt.code, tt.wind))
		})
	}
}

func TestDayLabel(t *testing.T) {
	// 2026-08-31 is a Monday
	assert.Equal(t, "Oggi", dayLabel(0, "2026-08-31"))
	assert.Equal(t, "Domani", dayLabel(1, "2026-09-01"))
	assert.Equal(t, "Lun", dayLabel(2, "2026-08-31"))
	assert.Equal(t, "Sab", dayLabel(3, "2026-09-05"))
	assert.Equal(t, "not-a-date", dayLabel(4, "not-a-date"))
}

type mockForecastProvider struct {
	mu    sync.Mutex
	calls int
	days  []models.WeatherDay
	err   error
}

func (m *mockForecastProvider) GetForecast(_ context.Context, _, _ float64) ([]models.WeatherDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.days, m.err
}

func (m *mockForecastProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ ForecastProvider = (*mockForecastProvider)(nil)

func TestForecastCacheProxy(t *testing.T) {
	days := []models.WeatherDay{
		{Day: "Oggi", Temp: 25, Condition: models.ConditionSunny, RainChance: 5},
	}

	t.Run("SecondCallServedFromCache", func(t *testing.T) {
		mock := &mockForecastProvider{days: days}
		proxy := NewForecastCacheProxy(mock, cache.NewForecastCache(cache.NewMemoryCache()), time.Minute)

		first, err := proxy.GetForecast(context.Background(), 41.9028, 12.4964)
		assert.NoError(t, err)
		assert.Equal(t, days, first)

		second, err := proxy.GetForecast(context.Background(), 41.9028, 12.4964)
		assert.NoError(t, err)
		assert.Equal(t, days, second)

		assert.Equal(t, 1, mock.callCount())
	})

	t.Run("DifferentCoordinatesMissCache", func(t *testing.T) {
		mock := &mockForecastProvider{days: days}
		proxy := NewForecastCacheProxy(mock, cache.NewForecastCache(cache.NewMemoryCache()), time.Minute)

		_, err := proxy.GetForecast(context.Background(), 41.9028, 12.4964)
		assert.NoError(t, err)
		_, err = proxy.GetForecast(context.Background(), 45.4642, 9.19)
		assert.NoError(t, err)

		assert.Equal(t, 2, mock.callCount())
	})

	t.Run("ErrorsAreNotCached", func(t *testing.T) {
		mock := &mockForecastProvider{err: apperrors.NewExternalAPIError("boom", nil)}
		proxy := NewForecastCacheProxy(mock, cache.NewForecastCache(cache.NewMemoryCache()), time.Minute)

		_, err := proxy.GetForecast(context.Background(), 41.9028, 12.4964)
		assert.Error(t, err)
		_, err = proxy.GetForecast(context.Background(), 41.9028, 12.4964)
		assert.Error(t, err)

		assert.Equal(t, 2, mock.callCount())
	})
}
