package llm

import "context"

// Provider is the abstraction for text-completion calls. The quiz package
// imposes all structure on the returned text itself; providers return the
// model's raw completion.
type Provider interface {
	// Complete sends a single-turn prompt and returns the trimmed response text.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}
