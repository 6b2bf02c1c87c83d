package service

import (
	"context"
	"log"
	"strings"
	"time"

	"agroio.app/errors"
	"agroio.app/metrics"
	"agroio.app/providers"
)

const maxDiagnosisImageBytes = 5 * 1024 * 1024

// GardenerService handles plant health diagnosis from photos
type GardenerService struct {
	diagnoser providers.PlantDiagnoser
	aiMetrics *metrics.AIMetrics
}

// NewGardenerService creates a new gardener service
func NewGardenerService(diagnoser providers.PlantDiagnoser, aiMetrics *metrics.AIMetrics) *GardenerService {
	return &GardenerService{
		diagnoser: diagnoser,
		aiMetrics: aiMetrics,
	}
}

// DiagnosePlant analyzes a plant photo and returns the structured health
// report produced by the AI assistant
func (s *GardenerService) DiagnosePlant(ctx context.Context, image []byte, mimeType string) (string, error) {
	log.Printf("[DEBUG] GardenerService.DiagnosePlant: %d bytes, type=%s\n", len(image), mimeType)

	if len(image) == 0 {
		return "", errors.NewValidationError("image is required")
	}
	if len(image) > maxDiagnosisImageBytes {
		return "", errors.NewValidationError("image must be smaller than 5MB")
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", errors.NewValidationError("file must be an image")
	}

	start := time.Now()
	report, err := s.diagnoser.DiagnosePlant(ctx, image, mimeType)
	if s.aiMetrics != nil {
		s.aiMetrics.RecordRequest("plant_diagnosis", time.Since(start), err)
	}
	if err != nil {
		return "", err
	}

	return report, nil
}
