package llm

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Config holds connection settings for the remote model API. BaseURL is
// optional; when empty the client talks to the default OpenAI endpoint,
// which also makes any OpenAI-compatible gateway usable.
type Config struct {
	BaseURL         string
	APIKey          string
	ExtractionModel string
	CoachingModel   string
}

func newClient(cfg Config) openai.Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return openai.NewClient(opts...)
}

// ping issues the cheapest possible completion to prove the endpoint and
// credentials work.
func ping(ctx context.Context, client openai.Client, model string) error {
	_, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("ping"),
		},
		Model:     model,
		MaxTokens: openai.Int(1),
	})
	return err
}
