package llm

import (
	"context"
	"fmt"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ProviderConfig describes one entry in the grading cascade.
type ProviderConfig struct {
	Name     string
	BaseURL  string // empty means the provider's default endpoint
	APIKey   string
	Model    string
	Priority int // lower tries first
	Timeout  time.Duration
}

// Configured reports whether the entry carries a usable credential.
// Placeholder keys left in env files count as unconfigured.
func (c ProviderConfig) Configured() bool {
	switch c.APIKey {
	case "", "changeme", "your-api-key-here":
		return false
	}
	return true
}

// Provider is one attempt in the grading cascade.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// chatProvider talks to any OpenAI-compatible chat-completion endpoint.
type chatProvider struct {
	name    string
	model   string
	timeout time.Duration
	client  *openai.Client
}

const defaultAttemptTimeout = 30 * time.Second

// NewProviders builds the cascade from configuration: unconfigured entries
// are dropped, the rest are ordered by priority.
func NewProviders(cfgs []ProviderConfig) []Provider {
	valid := make([]ProviderConfig, 0, len(cfgs))
	for _, c := range cfgs {
		if c.Configured() {
			valid = append(valid, c)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Priority < valid[j].Priority })

	out := make([]Provider, 0, len(valid))
	for _, c := range valid {
		oc := openai.DefaultConfig(c.APIKey)
		if c.BaseURL != "" {
			oc.BaseURL = c.BaseURL
		}
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = defaultAttemptTimeout
		}
		out = append(out, &chatProvider{
			name:    c.Name,
			model:   c.Model,
			timeout: timeout,
			client:  openai.NewClientWithConfig(oc),
		})
	}
	return out
}

func (p *chatProvider) Name() string { return p.name }

func (p *chatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   2048,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", p.name)
	}
	return resp.Choices[0].Message.Content, nil
}
