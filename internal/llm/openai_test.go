package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(config), model: "gpt-4o-mini"}
}

func chatCompletion(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finishReason,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_ReturnsText(t *testing.T) {
	p := newTestOpenAIProvider(t, serveJSON(http.StatusOK,
		chatCompletion("Problem 1:\nQuestion: What is 2 + 3?\nAnswer: 5", "stop")))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an experienced elementary math curriculum designer.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate 1 math problems about addition for grade 1."}},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, "Problem 1:\nQuestion: What is 2 + 3?\nAnswer: 5", resp.Content)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
}

func TestOpenAIProvider_RejectsUnusableResponses(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		p := newTestOpenAIProvider(t, serveJSON(http.StatusOK, chatCompletion("Problem 1:", "length")))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
		var maxTok *ErrMaxTokensExceeded
		require.ErrorAs(t, err, &maxTok)
		assert.Equal(t, "Problem 1:", maxTok.Content)
	})

	t.Run("empty", func(t *testing.T) {
		p := newTestOpenAIProvider(t, serveJSON(http.StatusOK, chatCompletion("  ", "stop")))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	t.Run("rate-limit", func(t *testing.T) {
		p := newTestOpenAIProvider(t, serveJSON(http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"type": "tokens", "message": "Rate limit exceeded", "code": "rate_limit_exceeded"},
		}))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("server-error", func(t *testing.T) {
		p := newTestOpenAIProvider(t, serveJSON(http.StatusInternalServerError, map[string]any{
			"error": map[string]any{"type": "server_error", "message": "Internal server error"},
		}))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})
}

func TestOpenAIProvider_SystemPromptComesFirst(t *testing.T) {
	msgs := buildOpenAIMessages(Request{
		System:   "persona",
		Messages: []Message{{Role: RoleUser, Content: "q"}, {Role: RoleAssistant, Content: "a"}},
	})
	require.Len(t, msgs, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
}

func TestNewOpenAIProvider_BaseURLOverride(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: "https://openrouter.ai/api/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)
}
