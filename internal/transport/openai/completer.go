package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/metrics"
)

// Completer issues schema-constrained chat completions against the
// OpenAI-compatible API. Shared by the query interpreter and the ranker.
type Completer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// CompleterConfig holds the generative model settings.
type CompleterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewCompleter creates a chat completion client.
func NewCompleter(cfg *CompleterConfig) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Completer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Complete sends one system+user prompt pair and returns the raw response
// text. JSON mode is always requested; callers still validate the payload
// since the model may not honor it. purpose labels metrics only.
func (c *Completer) Complete(ctx context.Context, purpose, system, user string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, purpose, "error").Inc()
		return "", fmt.Errorf("chat completion (%s): %w", purpose, err)
	}

	if len(resp.Choices) == 0 {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, purpose, "error").Inc()
		return "", fmt.Errorf("chat completion (%s): empty choices", purpose)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.model, purpose, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(c.model, purpose).Observe(duration.Seconds())
	metrics.CompletionTokensTotal.WithLabelValues(c.model, purpose, "prompt").
		Add(float64(resp.Usage.PromptTokens))
	metrics.CompletionTokensTotal.WithLabelValues(c.model, purpose, "completion").
		Add(float64(resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content, nil
}
