package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	require.NoError(t, err)
	return &GeminiProvider{client: client, model: "gemini-2.5-flash"}
}

func geminiReply(text, finishReason string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finishReason,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 34,
			"totalTokenCount":      46,
		},
	}
}

func TestGeminiProvider_ReturnsText(t *testing.T) {
	p := newTestGeminiProvider(t, serveJSON(http.StatusOK, geminiReply("Fractions name equal parts of a whole.", "STOP")))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a patient elementary math teacher.",
		Messages:  []Message{{Role: RoleUser, Content: "Explain fractions for grade 3."}},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fractions name equal parts of a whole.", resp.Text())
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 12, OutputTokens: 34, TotalTokens: 46}, resp.Usage)
}

func TestGeminiProvider_TruncatedOutputIsAnError(t *testing.T) {
	p := newTestGeminiProvider(t, serveJSON(http.StatusOK, geminiReply("Fractions name", "MAX_TOKENS")))

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Explain"}}})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, "Fractions name", maxTok.Content)
}

func TestBuildGeminiContents_MapsRoles(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "a", contents[1].Parts[0].Text)
}

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiModels))
}

func TestMapGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	assert.ErrorAs(t, mapGeminiError(genai.APIError{Code: http.StatusTooManyRequests, Message: "slow down"}), &rl)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, mapGeminiError(genai.APIError{Code: http.StatusInternalServerError}), &unavail)
}

func TestGeminiProvider_SafetyBlockIsInvalid(t *testing.T) {
	p := newTestGeminiProvider(t, serveJSON(http.StatusOK, geminiReply("", "SAFETY")))

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Explain"}}})
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "SAFETY")
}
