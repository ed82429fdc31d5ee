package heal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI suggests replacement selectors via the chat completions API.
type OpenAI struct {
	client        *openai.Client
	model         string
	snapshotLimit int
}

// NewOpenAI builds the OpenAI-backed provider. The credential comes from
// cfg.APIKey, else SELFHEAL_OPENAI_KEY, else OPENAI_API_KEY; absence of
// all three is a construction-time error.
func NewOpenAI(cfg RemoteConfig, snapshotLimit int) (*OpenAI, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("SELFHEAL_OPENAI_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai provider: SELFHEAL_OPENAI_KEY or OPENAI_API_KEY environment variable required")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}
	client := openai.NewClientWithConfig(clientCfg)

	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}

	return &OpenAI{
		client:        client,
		model:         model,
		snapshotLimit: snapshotLimit,
	}, nil
}

// Name implements Provider.
func (p *OpenAI) Name() string { return "openai" }

// Suggest issues a single chat completion and takes the first choice's
// content, trimmed, as the replacement selector.
func (p *OpenAI) Suggest(ctx context.Context, failedSelector, snapshot string) (string, error) {
	userPrompt := buildUserPrompt(failedSelector, snapshotFor(snapshot, p.snapshotLimit))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens: maxSuggestionTokens,
	})
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("chat completion: %w", err)}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: errors.New("empty response")}
	}
	suggestion := strings.TrimSpace(resp.Choices[0].Message.Content)
	if suggestion == "" {
		return "", &ProviderError{Provider: p.Name(), Err: errors.New("empty response")}
	}
	return suggestion, nil
}
