package advice

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

// AnthropicProvider answers via the Anthropic Messages API.
type AnthropicProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = string(anthropic.ModelClaude3Dot5HaikuLatest)
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(apiKey),
		model:  anthropic.Model(model),
	}, nil
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) Advise(ctx context.Context, question, language string) (string, error) {
	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: p.model,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt(question, language)),
		},
		MaxTokens: 1024,
	})
	if err != nil {
		return "", err
	}
	return resp.GetFirstContentText(), nil
}
