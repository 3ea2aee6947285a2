// README: Generation gateway; mock fixture or live model, always returns text.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"os"

	"wanderplan/internal/ai"
	"wanderplan/internal/observability"
)

const (
	ModeMock = "mock"
	ModeLive = "live"

	// MockFixtureMissingText is returned when mock mode is on but the fixture cannot be read.
	MockFixtureMissingText = "Error: Mock data file not found."
	// GenerationFailedText is returned when the live model call fails for any reason.
	GenerationFailedText = "Sorry, there was an error generating your itinerary. Please try again."
)

var errProviderNotConfigured = errors.New("gemini provider not initialized; check MOCK_MODE and GOOGLE_API_KEY")

// Generation is the gateway result. Degraded marks fallback text; callers treat it like any other text.
type Generation struct {
	Text     string
	Degraded bool
	Mode     string
}

// Gateway turns prompts into itinerary text, from the fixture in mock mode or the model otherwise.
type Gateway struct {
	provider    ai.TextGenerator
	fixturePath string
	mockMode    func() bool
}

// NewGateway wires the live provider (nil when the process started in mock mode),
// the mock fixture path and a mock-mode accessor consulted on every call.
func NewGateway(provider ai.TextGenerator, fixturePath string, mockMode func() bool) *Gateway {
	if mockMode == nil {
		mockMode = func() bool { return false }
	}
	return &Gateway{provider: provider, fixturePath: fixturePath, mockMode: mockMode}
}

// Generate never fails: faults are logged and replaced with a fixed apology text.
func (g *Gateway) Generate(ctx context.Context, prompt string) Generation {
	log := observability.LoggerFromContext(ctx)

	if g.mockMode() {
		data, err := os.ReadFile(g.fixturePath)
		if err != nil {
			log.Error("mock fixture not found; create it for MOCK_MODE", "path", g.fixturePath, "error", err)
			return Generation{Text: MockFixtureMissingText, Degraded: true, Mode: ModeMock}
		}
		return Generation{Text: string(data), Mode: ModeMock}
	}

	if g.provider == nil {
		log.Error("error with Gemini API", "error", errProviderNotConfigured)
		return Generation{Text: GenerationFailedText, Degraded: true, Mode: ModeLive}
	}

	text, err := g.callProvider(ctx, prompt)
	if err != nil {
		log.Error("error with Gemini API", "error", err, "model", g.modelName(), "prompt_chars", len(prompt))
		return Generation{Text: GenerationFailedText, Degraded: true, Mode: ModeLive}
	}
	return Generation{Text: text, Mode: ModeLive}
}

// callProvider converts a panic inside the model client into an error.
func (g *Gateway) callProvider(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gemini client panic: %v", r)
		}
	}()
	return g.provider.GenerateText(ctx, prompt)
}

// modelName is the provider's model, or "" when it does not report one.
func (g *Gateway) modelName() string {
	if named, ok := g.provider.(ai.ModelNamer); ok {
		return named.ModelName()
	}
	return ""
}
