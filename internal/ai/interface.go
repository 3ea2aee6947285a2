package ai

import (
	"context"
)

// TextGenerator defines the contract for turning a prompt into model text.
// GeminiProvider is the production implementation; tests substitute fakes.
type TextGenerator interface {
	// GenerateText submits prompt to the model and returns its text output.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ModelNamer is implemented by providers that can report the model they call.
type ModelNamer interface {
	ModelName() string
}
