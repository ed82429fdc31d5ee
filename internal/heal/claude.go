package heal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// maxSuggestionTokens caps the completion: a selector is one short line.
const maxSuggestionTokens = 200

// Claude suggests replacement selectors via Anthropic's Messages API.
type Claude struct {
	client        *anthropic.Client
	model         string
	snapshotLimit int
}

// NewClaude builds the Anthropic-backed provider. The credential comes
// from cfg.APIKey, else SELFHEAL_ANTHROPIC_KEY, else ANTHROPIC_API_KEY;
// absence of all three is a construction-time error.
func NewClaude(cfg RemoteConfig, snapshotLimit int) (*Claude, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("SELFHEAL_ANTHROPIC_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("claude provider: SELFHEAL_ANTHROPIC_KEY or ANTHROPIC_API_KEY environment variable required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	client := anthropic.NewClient(opts...)

	model := cfg.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	return &Claude{
		client:        &client,
		model:         model,
		snapshotLimit: snapshotLimit,
	}, nil
}

// Name implements Provider.
func (p *Claude) Name() string { return "anthropic" }

// Suggest issues a single completion call and takes the first text block,
// trimmed, as the replacement selector. Transport failures and empty
// responses surface as ProviderError; the orchestrator's retry loop is the
// only retry mechanism.
func (p *Claude) Suggest(ctx context.Context, failedSelector, snapshot string) (string, error) {
	userPrompt := buildUserPrompt(failedSelector, snapshotFor(snapshot, p.snapshotLimit))

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxSuggestionTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("messages call: %w", err)}
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	suggestion := strings.TrimSpace(text)
	if suggestion == "" {
		return "", &ProviderError{Provider: p.Name(), Err: errors.New("empty response")}
	}
	return suggestion, nil
}
