package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahid1099/generate-qa/config"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *OpenAIGateway {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return NewOpenAIGateway(config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     ts.URL + "/v1",
		Model:       "gpt-3.5-turbo",
		MaxTokens:   2000,
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}, logrus.New())
}

func TestOpenAIGateway_Complete(t *testing.T) {
	var got openai.ChatCompletionRequest
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: "gpt-3.5-turbo",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "  [1, 2]\n"}},
			},
		})
	})

	out, err := g.Complete(context.Background(), "the prompt", "the system")
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]", out)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.Equal(t, 2000, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, "the system", got.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[1].Role)
	assert.Equal(t, "the prompt", got.Messages[1].Content)
}

func TestOpenAIGateway_NoChoices(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	})

	_, err := g.Complete(context.Background(), "p", "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIGateway_UpstreamError(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	})

	_, err := g.Complete(context.Background(), "p", "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestOpenAIGateway_NotConfigured(t *testing.T) {
	g := NewOpenAIGateway(config.OpenAIConfig{Model: "gpt-3.5-turbo", Timeout: time.Second}, logrus.New())

	_, err := g.Complete(context.Background(), "p", "s")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
