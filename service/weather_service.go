package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agroio.app/config"
	"agroio.app/models"
	"agroio.app/providers"
)

// WeatherService handles forecast retrieval and weather-driven suggestions
type WeatherService struct {
	provider providers.ForecastProvider
	config   *config.WeatherConfig
}

// NewWeatherService creates a new weather service with the specified provider
func NewWeatherService(provider providers.ForecastProvider, config *config.WeatherConfig) *WeatherService {
	return &WeatherService{
		provider: provider,
		config:   config,
	}
}

// GetForecast retrieves the daily forecast for the given position. When no
// position is supplied the configured fallback location is used, so the
// dashboard still shows weather for users who denied geolocation.
func (s *WeatherService) GetForecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherDay, error) {
	if latitude == 0 && longitude == 0 {
		log.Printf("[DEBUG] WeatherService.GetForecast: no position, using fallback %.4f,%.4f\n",
			s.config.FallbackLatitude, s.config.FallbackLongitude)
		latitude = s.config.FallbackLatitude
		longitude = s.config.FallbackLongitude
	}

	days, err := s.provider.GetForecast(ctx, latitude, longitude)
	if err != nil {
		log.Printf("[ERROR] Forecast provider error: %v\n", err)
		return nil, err
	}

	return days, nil
}

// GetSuggestions derives task suggestions from the next three forecast days
func (s *WeatherService) GetSuggestions(ctx context.Context, latitude, longitude float64) ([]models.TaskSuggestion, error) {
	days, err := s.GetForecast(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}

	return GenerateTaskSuggestions(days), nil
}

// GenerateTaskSuggestions analyzes the next three days and produces
// recommendations for the dashboard. Duplicate titles are dropped, keeping
// the first occurrence.
func GenerateTaskSuggestions(days []models.WeatherDay) []models.TaskSuggestion {
	forecast := days
	if len(forecast) > 3 {
		forecast = forecast[:3]
	}
	if len(forecast) == 0 {
		return []models.TaskSuggestion{}
	}

	suggestions := []models.TaskSuggestion{}

	var heavyRainDays []models.WeatherDay
	for _, day := range forecast {
		if day.RainChance > 60 {
			heavyRainDays = append(heavyRainDays, day)
		}
	}
	if len(heavyRainDays) > 0 {
		suggestions = append(suggestions, models.TaskSuggestion{
			Title: "Pioggia in arrivo",
			Reason: fmt.Sprintf("Prevista pioggia con probabilità superiore al %d%% per %s. Considera di posticipare l'irrigazione e i trattamenti fogliari.",
				heavyRainDays[0].RainChance, strings.ToLower(heavyRainDays[0].Day)),
			Type: "warning",
		})
	}

	sunnyDays := 0
	for _, day := range forecast {
		if day.Condition == models.ConditionSunny && day.RainChance < 20 {
			sunnyDays++
		}
	}
	if sunnyDays >= 2 {
		suggestions = append(suggestions, models.TaskSuggestion{
			Title: "Periodo favorevole",
			Reason: fmt.Sprintf("Si prevedono %d giorni di sole. È un ottimo momento per la raccolta, la semina o i lavori di preparazione del terreno.",
				sunnyDays),
			Type: "suggestion",
		})
	}

	for _, day := range forecast {
		if day.Condition == models.ConditionWindy || day.Wind > 30 {
			suggestions = append(suggestions, models.TaskSuggestion{
				Title: "Attenzione al vento forte",
				Reason: fmt.Sprintf("Previsto vento superiore a %d km/h per %s. Sconsigliata la nebulizzazione di trattamenti per evitarne la dispersione.",
					day.Wind, strings.ToLower(day.Day)),
				Type: "warning",
			})
			break
		}
	}

	mildDays := 0
	for _, day := range forecast {
		if day.Temp > 10 && day.RainChance < 40 {
			mildDays++
		}
	}
	if mildDays >= 2 && len(heavyRainDays) == 0 {
		suggestions = append(suggestions, models.TaskSuggestion{
			Title:  "Condizioni ideali per la semina",
			Reason: "Le temperature miti e l'assenza di piogge intense creano un ambiente perfetto per seminare o trapiantare nuove colture.",
			Type:   "suggestion",
		})
	}

	seen := make(map[string]bool)
	unique := suggestions[:0]
	for _, s := range suggestions {
		if !seen[s.Title] {
			seen[s.Title] = true
			unique = append(unique, s)
		}
	}

	return unique
}
