package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"agroio.app/config"
	"agroio.app/errors"
)

const diagnosisPrompt = `Sei "AgroGiardiniere", un agronomo esperto e assistente AI. Analizza la seguente immagine di una pianta.
Fornisci una diagnosi chiara, concisa e utile, formattata in Markdown.
La tua risposta DEVE includere le seguenti sezioni ESATTE con questi titoli in grassetto:

**Stato di Salute Generale**
(Descrivi la tua valutazione complessiva: sana, stressata, malata, carenza nutrizionale, ecc.)

**Potenziali Problemi Rilevati**
(Elenca in un elenco puntato i problemi specifici che noti, come macchie fogliari, ingiallimento, presenza di insetti, ecc. Se la pianta sembra sana, indicalo chiaramente.)

**Interventi Consigliati**
(Fornisci un elenco puntato di azioni pratiche e chiare che l'agricoltore può intraprendere. Sii specifico. Se la pianta è sana, fornisci consigli di mantenimento.)`

// GeminiProvider implements AIProvider backed by Google's Gemini models
type GeminiProvider struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGeminiProvider creates a Gemini-backed AI provider
func NewGeminiProvider(ctx context.Context, cfg *config.AIConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.NewConfigurationError("failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:     client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
	}, nil
}

// Close releases the underlying client
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// GenerateImage produces a single image for the prompt and returns it as a
// data URL. One attempt, no retry.
func (p *GeminiProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.imageModel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.NewAIError("image generation failed", err)
	}

	imageURL, _ := extractParts(resp)
	if imageURL == "" {
		return "", errors.NewAIError("model returned no image", nil)
	}
	return imageURL, nil
}

// DiagnosePlant sends the plant photo with the fixed diagnosis prompt and
// returns the Markdown report.
func (p *GeminiProvider) DiagnosePlant(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", errors.NewValidationError("image cannot be empty")
	}

	model := p.client.GenerativeModel(p.textModel)

	resp, err := model.GenerateContent(ctx,
		genai.Text(diagnosisPrompt),
		genai.ImageData(imageFormat(mimeType), image),
	)
	if err != nil {
		return "", errors.NewAIError("plant diagnosis failed", err)
	}

	_, text := extractParts(resp)
	if text == "" {
		return "", errors.NewAIError("model returned no diagnosis", nil)
	}
	return text, nil
}

// GenerateGardenPlan asks for a textual layout plus a rendered sketch. The
// optional photo gives the model the real plot to draw over.
func (p *GeminiProvider) GenerateGardenPlan(ctx context.Context, prompt string, photo []byte) (string, string, error) {
	model := p.client.GenerativeModel(p.imageModel)

	parts := []genai.Part{genai.Text(prompt)}
	if len(photo) > 0 {
		parts = append(parts, genai.ImageData("jpeg", photo))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", "", errors.NewAIError("garden plan generation failed", err)
	}

	imageURL, text := extractParts(resp)
	if imageURL == "" && text == "" {
		return "", "", errors.NewAIError("model returned neither text nor image", nil)
	}
	return text, imageURL, nil
}

// extractParts walks the first candidate and pulls out the first inline
// image (as a data URL) and the concatenated text parts.
func extractParts(resp *genai.GenerateContentResponse) (imageURL, text string) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ""
	}

	var textBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			textBuilder.WriteString(string(v))
		case genai.Blob:
			if imageURL == "" {
				mime := v.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				imageURL = fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(v.Data))
			}
		}
	}

	return imageURL, textBuilder.String()
}

// imageFormat converts a MIME type like "image/jpeg" into the short format
// name the genai SDK expects.
func imageFormat(mimeType string) string {
	if idx := strings.Index(mimeType, "/"); idx >= 0 {
		return mimeType[idx+1:]
	}
	if mimeType == "" {
		return "jpeg"
	}
	return mimeType
}
