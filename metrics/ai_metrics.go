package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type AIMetricsCollector struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var aiCollector *AIMetricsCollector

func getAICollector() *AIMetricsCollector {
	if aiCollector == nil {
		aiCollector = &AIMetricsCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "agroio_ai_requests_total",
					Help: "The total number of generative AI requests",
				},
				[]string{"feature"},
			),
			Failures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "agroio_ai_failures_total",
					Help: "The total number of failed generative AI requests",
				},
				[]string{"feature"},
			),
			Duration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "agroio_ai_request_duration_seconds",
					Help:    "Generative AI request duration in seconds",
					Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
				},
				[]string{"feature"},
			),
		}
	}
	return aiCollector
}

// AIMetrics records generative AI usage per feature
// (vegetable_image, diagnosis, garden_plan, market_image)
type AIMetrics struct {
	collector *AIMetricsCollector
}

func NewAIMetrics() *AIMetrics {
	return &AIMetrics{collector: getAICollector()}
}

func (m *AIMetrics) RecordRequest(feature string, duration time.Duration, err error) {
	m.collector.Requests.WithLabelValues(feature).Inc()
	m.collector.Duration.WithLabelValues(feature).Observe(duration.Seconds())
	if err != nil {
		m.collector.Failures.WithLabelValues(feature).Inc()
	}
}
