package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// scenario is one canned forecast day, cycled over the requested range
type scenario struct {
	weatherCode int
	tempMax     float64
	tempMin     float64
	windMax     float64
	humidity    float64
	rainChance  float64
}

// A mix of clear, rainy and windy days so the dashboard and the alert
// scheduler both have something to react to.
var scenarios = []scenario{
	{weatherCode: 0, tempMax: 26, tempMin: 14, windMax: 8, humidity: 45, rainChance: 5},
	{weatherCode: 61, tempMax: 19, tempMin: 11, windMax: 18, humidity: 85, rainChance: 80},
	{weatherCode: 3, tempMax: 21, tempMin: 12, windMax: 42, humidity: 60, rainChance: 15},
	{weatherCode: 2, tempMax: 23, tempMin: 13, windMax: 12, humidity: 55, rainChance: 25},
	{weatherCode: 95, tempMax: 17, tempMin: 10, windMax: 30, humidity: 90, rainChance: 95},
	{weatherCode: 1, tempMax: 25, tempMin: 15, windMax: 10, humidity: 50, rainChance: 10},
	{weatherCode: 0, tempMax: 27, tempMin: 16, windMax: 6, humidity: 40, rainChance: 0},
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/forecast", func(c *gin.Context) {
		latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "reason": "Latitude must be a number"})
			return
		}
		if _, err := strconv.ParseFloat(c.Query("longitude"), 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "reason": "Longitude must be a number"})
			return
		}

		// latitude 0 simulates an upstream outage
		if latitude == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": true, "reason": "Internal server error"})
			return
		}

		days := 7
		if parsed, err := strconv.Atoi(c.Query("forecast_days")); err == nil && parsed > 0 && parsed <= 16 {
			days = parsed
		}

		times := make([]string, days)
		codes := make([]int, days)
		tempsMax := make([]float64, days)
		tempsMin := make([]float64, days)
		winds := make([]float64, days)
		humidities := make([]float64, days)
		rains := make([]float64, days)

		today := time.Now()
		for i := 0; i < days; i++ {
			day := scenarios[i%len(scenarios)]
			times[i] = today.AddDate(0, 0, i).Format("2006-01-02")
			codes[i] = day.weatherCode
			tempsMax[i] = day.tempMax
			tempsMin[i] = day.tempMin
			winds[i] = day.windMax
			humidities[i] = day.humidity
			rains[i] = day.rainChance
		}

		c.JSON(http.StatusOK, gin.H{
			"latitude":  latitude,
			"longitude": c.Query("longitude"),
			"timezone":  "Europe/Rome",
			"daily": gin.H{
				"time":                          times,
				"weather_code":                  codes,
				"temperature_2m_max":            tempsMax,
				"temperature_2m_min":            tempsMin,
				"wind_speed_10m_max":            winds,
				"relative_humidity_2m_mean":     humidities,
				"precipitation_probability_max": rains,
			},
		})
	})

	slog.Info("Mock Open-Meteo server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
