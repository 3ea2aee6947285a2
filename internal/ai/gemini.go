package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when Gemini answers without any text.
var ErrEmptyResponse = errors.New("gemini: API returned empty text")

// GeminiProvider implements TextGenerator using Google's Gemini models.
// A single provider is created at startup and shared by all requests.
type GeminiProvider struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string, opts Options) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	opts = opts.withDefaults()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	// Itineraries are HTML, not JSON; keep the default text/plain response type.
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}
	if opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxOutputTokens)
	}

	return &GeminiProvider{
		client:    client,
		model:     model,
		modelName: opts.Model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ModelName returns the configured Gemini model.
func (p *GeminiProvider) ModelName() string {
	return p.modelName
}

// GenerateText sends prompt to Gemini and joins the text parts of the first candidate.
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("gemini: empty prompt")
	}

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	text := joinTextParts(resp.Candidates[0].Content.Parts)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return cleanHTMLFence(text), nil
}

func joinTextParts(parts []genai.Part) string {
	var b strings.Builder
	for _, part := range parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}

// cleanHTMLFence removes markdown code fences the model sometimes wraps HTML in (```html ... ```).
func cleanHTMLFence(input string) string {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "```") {
		return input
	}
	input = strings.TrimPrefix(input, "```html")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
