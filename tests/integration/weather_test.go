package integration

import (
	"net/http"

	"agroio.app/models"
)

func (s *IntegrationTestSuite) TestWeatherForecast() {
	token := s.registerUser(uniqueEmail("weather"), "Gratis")

	s.queueForecast(
		forecastDay{Date: futureDate(0), WeatherCode: 0, TempMax: 24.4, TempMin: 12.6, WindMax: 10, Humidity: 55, RainChance: 5},
		forecastDay{Date: futureDate(1), WeatherCode: 61, TempMax: 18, TempMin: 9, WindMax: 15, Humidity: 80, RainChance: 85},
		forecastDay{Date: futureDate(2), WeatherCode: 3, TempMax: 20, TempMin: 11, WindMax: 40, Humidity: 60, RainChance: 10},
	)

	w := s.doRequest("GET", "/api/weather", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Days        []models.WeatherDay     `json:"days"`
		Suggestions []models.TaskSuggestion `json:"suggestions"`
	}
	s.decodeJSON(w, &response)

	s.Require().Len(response.Days, 3)
	s.Equal("Oggi", response.Days[0].Day)
	s.Equal("Domani", response.Days[1].Day)

	s.Equal(24, response.Days[0].Temp)
	s.Equal(13, response.Days[0].TempMin)
	s.Equal(models.ConditionSunny, response.Days[0].Condition)

	s.Equal(85, response.Days[1].RainChance)
	s.Equal(models.ConditionRain, response.Days[1].Condition)

	// wind above 30 km/h overrides the sky code
	s.Equal(models.ConditionWindy, response.Days[2].Condition)

	titles := make([]string, 0, len(response.Suggestions))
	for _, suggestion := range response.Suggestions {
		titles = append(titles, suggestion.Title)
	}
	s.Contains(titles, "Pioggia in arrivo")
	s.Contains(titles, "Attenzione al vento forte")
}

func (s *IntegrationTestSuite) TestWeatherSuggestionsEndpoint() {
	token := s.registerUser(uniqueEmail("suggestions"), "Gratis")

	s.queueForecast(
		forecastDay{Date: futureDate(0), WeatherCode: 0, TempMax: 22, TempMin: 12, WindMax: 8, Humidity: 50, RainChance: 5},
		forecastDay{Date: futureDate(1), WeatherCode: 0, TempMax: 23, TempMin: 13, WindMax: 9, Humidity: 48, RainChance: 10},
		forecastDay{Date: futureDate(2), WeatherCode: 0, TempMax: 25, TempMin: 14, WindMax: 7, Humidity: 45, RainChance: 0},
	)

	w := s.doRequest("GET", "/api/suggestions", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var suggestions []models.TaskSuggestion
	s.decodeJSON(w, &suggestions)

	titles := make([]string, 0, len(suggestions))
	for _, suggestion := range suggestions {
		titles = append(titles, suggestion.Title)
	}
	s.Contains(titles, "Periodo favorevole")
	s.Contains(titles, "Condizioni ideali per la semina")
	s.NotContains(titles, "Pioggia in arrivo")
}

func (s *IntegrationTestSuite) TestWeatherProviderFailure() {
	token := s.registerUser(uniqueEmail("weather-down"), "Gratis")

	s.failWeather = true

	w := s.doRequest("GET", "/api/weather", token, nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *IntegrationTestSuite) TestWeatherUsesUpdatedLocation() {
	token := s.registerUser(uniqueEmail("location"), "Gratis")

	w := s.doRequest("PUT", "/api/me/location", token, map[string]float64{
		"lat": 45.4642, "lng": 9.19,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.queueForecast(
		forecastDay{Date: futureDate(0), WeatherCode: 2, TempMax: 16, TempMin: 8, WindMax: 12, Humidity: 70, RainChance: 30},
	)

	w = s.doRequest("GET", "/api/weather", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Days []models.WeatherDay `json:"days"`
	}
	s.decodeJSON(w, &response)
	s.Require().Len(response.Days, 1)
	s.Equal(models.ConditionCloudy, response.Days[0].Condition)
}

func (s *IntegrationTestSuite) TestWeatherRequiresAuthentication() {
	w := s.doRequest("GET", "/api/weather", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}
