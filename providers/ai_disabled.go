package providers

import (
	"context"

	"agroio.app/errors"
)

// DisabledAIProvider is used when no AI API key is configured. Every call
// fails with an AI error so callers fall back to their degraded behavior.
type DisabledAIProvider struct{}

// NewDisabledAIProvider creates the no-op AI provider
func NewDisabledAIProvider() *DisabledAIProvider {
	return &DisabledAIProvider{}
}

func (p *DisabledAIProvider) GenerateImage(_ context.Context, _ string) (string, error) {
	return "", errors.NewAIError("generative AI is not configured", nil)
}

func (p *DisabledAIProvider) DiagnosePlant(_ context.Context, _ []byte, _ string) (string, error) {
	return "", errors.NewAIError("generative AI is not configured", nil)
}

func (p *DisabledAIProvider) GenerateGardenPlan(_ context.Context, _ string, _ []byte) (string, string, error) {
	return "", "", errors.NewAIError("generative AI is not configured", nil)
}
