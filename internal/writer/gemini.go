package writer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiWriter implements Writer using Gemini text generation.
type GeminiWriter struct {
	client        *genai.Client
	model         string
	promptBuilder *PromptBuilder
}

func NewGeminiWriter(ctx context.Context, apiKey, modelName string) (*GeminiWriter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiWriter{
		client:        client,
		model:         modelName,
		promptBuilder: &PromptBuilder{},
	}, nil
}

func (w *GeminiWriter) WriteDocstring(ctx context.Context, req DocRequest) (string, error) {
	return w.generate(ctx, w.promptBuilder.BuildDocstringPrompt(req))
}

func (w *GeminiWriter) WriteModuleDoc(ctx context.Context, moduleName, source, instruction string) (string, error) {
	return w.generate(ctx, w.promptBuilder.BuildModuleDocPrompt(moduleName, source, instruction))
}

func (w *GeminiWriter) WriteCommitMessage(ctx context.Context, diff, instruction string) (string, error) {
	return w.generate(ctx, w.promptBuilder.BuildCommitPrompt(diff, instruction))
}

func (w *GeminiWriter) generate(ctx context.Context, prompt string) (string, error) {
	contents := genai.Text(prompt)
	resp, err := w.client.Models.GenerateContent(ctx, w.model, contents, nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini response was empty")
	}
	return text, nil
}
