package ai

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// Options tunes the generative model created by NewGeminiProvider.
type Options struct {
	// Model is the Gemini model name, e.g. "gemini-2.5-flash".
	Model string

	// Temperature of zero leaves the model default in place.
	Temperature float32

	// MaxOutputTokens caps the reply size. Zero leaves the model default in place.
	MaxOutputTokens int32
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	return o
}
