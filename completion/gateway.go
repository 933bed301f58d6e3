package completion

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/config"
)

// ErrNotConfigured is returned when no API key was supplied at startup.
var ErrNotConfigured = errors.New("openai integration is not configured")

// Gateway sends a single-turn chat request and returns the reply text.
type Gateway interface {
	Complete(ctx context.Context, prompt, system string) (string, error)
}

type OpenAIGateway struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	logger      *logrus.Logger
}

func NewOpenAIGateway(cfg config.OpenAIConfig, log *logrus.Logger) *OpenAIGateway {
	g := &OpenAIGateway{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      log,
	}
	if cfg.APIKey == "" {
		return g
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	g.client = openai.NewClientWithConfig(clientCfg)
	return g
}

// Complete returns the trimmed content of the first choice.
func (g *OpenAIGateway) Complete(ctx context.Context, prompt, system string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	g.logger.WithFields(logrus.Fields{
		"model":             resp.Model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"duration_ms":       time.Since(start).Milliseconds(),
	}).Debug("Chat completion finished")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
