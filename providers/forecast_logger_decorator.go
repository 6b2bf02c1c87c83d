package providers

import (
	"context"
	"time"

	"agroio.app/models"
)

type ForecastLoggerDecorator struct {
	wrappedProvider ForecastProvider
	logger          FileLogger
	providerName    string
}

// NewForecastLoggerDecorator logs every provider round trip to the request
// log file, including failures and their duration.
func NewForecastLoggerDecorator(provider ForecastProvider, logger FileLogger, providerName string) ForecastProvider {
	return &ForecastLoggerDecorator{
		wrappedProvider: provider,
		logger:          logger,
		providerName:    providerName,
	}
}

func (d *ForecastLoggerDecorator) GetForecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherDay, error) {
	d.logger.LogRequest(d.providerName, latitude, longitude)
	startTime := time.Now()

	days, err := d.wrappedProvider.GetForecast(ctx, latitude, longitude)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.LogError(d.providerName, latitude, longitude, err, duration)
		return nil, err
	}

	d.logger.LogResponse(d.providerName, latitude, longitude, len(days), duration)
	return days, nil
}
