package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"agroio.app/config"
	"agroio.app/errors"
	"agroio.app/models"
)

const dailyVariables = "weather_code,temperature_2m_max,temperature_2m_min," +
	"wind_speed_10m_max,relative_humidity_2m_mean,precipitation_probability_max"

// windyThresholdKmh overrides the sky condition when gusts get dangerous
const windyThresholdKmh = 30.0

// OpenMeteoProvider implements ForecastProvider for the Open-Meteo API
type OpenMeteoProvider struct {
	baseURL      string
	forecastDays int
	client       *http.Client
}

// NewOpenMeteoProvider creates a new Open-Meteo forecast provider
func NewOpenMeteoProvider(config *config.WeatherConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL:      config.BaseURL,
		forecastDays: config.ForecastDays,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// openMeteoResponse mirrors the columnar JSON layout of the daily endpoint
type openMeteoResponse struct {
	Daily struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		WindSpeedMax                []float64 `json:"wind_speed_10m_max"`
		RelativeHumidityMean        []float64 `json:"relative_humidity_2m_mean"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// GetForecast retrieves the daily forecast and zips the columnar arrays
// into one WeatherDay per index.
func (p *OpenMeteoProvider) GetForecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherDay, error) {
	if latitude < -90 || latitude > 90 {
		return nil, errors.NewValidationError("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return nil, errors.NewValidationError("longitude must be between -180 and 180")
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%g", latitude))
	query.Set("longitude", fmt.Sprintf("%g", longitude))
	query.Set("daily", dailyVariables)
	query.Set("forecast_days", fmt.Sprintf("%d", p.forecastDays))
	query.Set("timezone", "auto")

	requestURL := fmt.Sprintf("%s/forecast?%s", p.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build forecast request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get forecast data", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			// Ignore close error as it's not critical for the main operation
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("forecast API returned status code %d", resp.StatusCode), nil)
	}

	var result openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode forecast data", err)
	}

	daily := result.Daily
	if len(daily.Time) == 0 {
		return nil, errors.NewExternalAPIError("forecast response contains no days", nil)
	}
	if len(daily.WeatherCode) != len(daily.Time) ||
		len(daily.TemperatureMax) != len(daily.Time) ||
		len(daily.TemperatureMin) != len(daily.Time) ||
		len(daily.WindSpeedMax) != len(daily.Time) {
		return nil, errors.NewExternalAPIError("forecast response columns have mismatched lengths", nil)
	}

	days := make([]models.WeatherDay, 0, len(daily.Time))
	for i := range daily.Time {
		wind := daily.WindSpeedMax[i]

		var humidity float64
		if i < len(daily.RelativeHumidityMean) {
			humidity = daily.RelativeHumidityMean[i]
		}
		var rainChance float64
		if i < len(daily.PrecipitationProbabilityMax) {
			rainChance = daily.PrecipitationProbabilityMax[i]
		}

		days = append(days, models.WeatherDay{
			Day:        dayLabel(i, daily.Time[i]),
			Temp:       int(math.Round(daily.TemperatureMax[i])),
			TempMin:    int(math.Round(daily.TemperatureMin[i])),
			Condition:  mapCondition(daily.WeatherCode[i], wind),
			Wind:       int(math.Round(wind)),
			Humidity:   int(math.Round(humidity)),
			RainChance: int(math.Round(rainChance)),
		})
	}

	return days, nil
}

var italianShortWeekdays = [7]string{"Dom", "Lun", "Mar", "Mer", "Gio", "Ven", "Sab"}

// dayLabel names the first two days and falls back to the Italian short
// weekday with a capitalized first letter.
func dayLabel(index int, date string) string {
	switch index {
	case 0:
		return "Oggi"
	case 1:
		return "Domani"
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return italianShortWeekdays[parsed.Weekday()]
}

// mapCondition converts a WMO weather code into the simplified condition.
// Strong wind overrides whatever the sky looks like.
func mapCondition(code int, windKmh float64) models.WeatherCondition {
	if windKmh > windyThresholdKmh {
		return models.ConditionWindy
	}

	switch code {
	case 0:
		return models.ConditionSunny
	case 1, 2, 3, 45, 48:
		return models.ConditionCloudy
	case 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82, 95, 96, 99:
		return models.ConditionRain
	default:
		return models.ConditionCloudy
	}
}
