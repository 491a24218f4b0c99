package writer

import (
	"context"
	"fmt"
	"strings"
)

type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// New selects a generation backend by provider name.
func New(ctx context.Context, opts Options) (Writer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		return NewOpenAIWriter(opts.APIKey, opts.Model, opts.BaseURL), nil
	case "gemini":
		return NewGeminiWriter(ctx, opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unsupported writer provider: %s", opts.Provider)
	}
}
