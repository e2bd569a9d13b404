package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		cfg       RetryConfig
		responses []MockResponse
		wantText  string
		wantErr   error
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			cfg:       fastRetry(),
			responses: []MockResponse{TextResponse("Problem 1:")},
			wantText:  "Problem 1:",
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			cfg:       fastRetry(),
			responses: []MockResponse{down(), TextResponse("Problem 1:")},
			wantText:  "Problem 1:",
			wantCalls: 2,
		},
		{
			name:      "attempts exhausted",
			cfg:       fastRetry(),
			responses: []MockResponse{down(), down(), down(), TextResponse("unreached")},
			wantErr:   &ErrProviderUnavailable{},
			wantCalls: 3,
		},
		{
			name:      "truncation is final",
			cfg:       fastRetry(),
			responses: []MockResponse{{Err: &ErrMaxTokensExceeded{Content: "Problem 1:"}}, TextResponse("unreached")},
			wantErr:   &ErrMaxTokensExceeded{},
			wantCalls: 1,
		},
		{
			name: "empty response retried once",
			cfg:  fastRetry(),
			responses: []MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("empty")}},
				{Err: &ErrInvalidResponse{Err: errors.New("empty")}},
				TextResponse("unreached"),
			},
			wantErr:   &ErrInvalidResponse{},
			wantCalls: 2,
		},
		{
			name: "rate limit waits then succeeds",
			cfg:  fastRetry(),
			responses: []MockResponse{
				{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
				TextResponse("Problem 1:"),
			},
			wantText:  "Problem 1:",
			wantCalls: 2,
		},
		{
			name:      "default config does not retry",
			cfg:       DefaultConfig().Retry,
			responses: []MockResponse{down(), TextResponse("recovered")},
			wantErr:   &ErrProviderUnavailable{},
			wantCalls: 1,
		},
		{
			name:      "zero attempts still calls once",
			cfg:       RetryConfig{},
			responses: []MockResponse{TextResponse("ok")},
			wantText:  "ok",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, tt.cfg).Generate(context.Background(), Request{})

			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.IsType(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, resp.Text())
		})
	}
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	mock := NewMockProvider(down(), down(), TextResponse("unreached"))
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_BackoffIsCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 200 * time.Millisecond, Multiplier: 10}}
	for attempt := range 4 {
		wait := r.backoff(attempt, errors.New("x"))
		assert.LessOrEqual(t, wait, 240*time.Millisecond)
		assert.GreaterOrEqual(t, wait, 80*time.Millisecond)
	}
	rl := &ErrRateLimit{RetryAfter: 3 * time.Second}
	assert.Equal(t, 3*time.Second, r.backoff(0, rl))
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry()).ModelID())
}
