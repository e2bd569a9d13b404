package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/content"
	"github.com/abhisek/mathgen/internal/generator"
	"github.com/abhisek/mathgen/internal/llm"
)

type fakeGenerator struct {
	calls    []string
	problems generator.ProblemsRequest
	err      error
}

func (f *fakeGenerator) GenerateProblems(_ context.Context, req generator.ProblemsRequest) (*generator.ProblemsResult, error) {
	f.calls = append(f.calls, "generate")
	f.problems = req
	if f.err != nil {
		return nil, f.err
	}
	return &generator.ProblemsResult{Grade: req.Grade, Topic: req.Topic, NumProblems: req.NumProblems, Difficulty: req.Difficulty, Result: "ok"}, nil
}

func (f *fakeGenerator) ExplainConcept(_ context.Context, req generator.ExplainRequest) (*generator.ExplainResult, error) {
	f.calls = append(f.calls, "explain")
	return &generator.ExplainResult{Grade: req.Grade, Topic: req.Topic, Explanation: "ok"}, f.err
}

func (f *fakeGenerator) GenerateWorksheet(_ context.Context, req generator.WorksheetRequest) (*generator.WorksheetResult, error) {
	f.calls = append(f.calls, "worksheet")
	return &generator.WorksheetResult{Grade: req.Grade, Topic: req.Topic, Worksheet: "ok"}, f.err
}

func TestParseParams_Defaults(t *testing.T) {
	p, err := ParseParams(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "grade_1", p.Grade.String())
	assert.Equal(t, "addition", p.Topic.String())
	assert.Equal(t, 5, p.NumProblems)
	assert.Equal(t, 1, p.Difficulty)
	assert.Equal(t, ActionGenerate, p.Action)
}

func TestParseParams_BodyWinsOverQuery(t *testing.T) {
	body := []byte(`{"grade":"grade_3","num_problems":"7","difficulty":3}`)
	query := map[string]string{"grade": "grade_2", "topic": "fractions", "difficulty": "1"}

	p, err := ParseParams(body, query)
	require.NoError(t, err)
	assert.Equal(t, "grade_3", p.Grade.String())
	assert.Equal(t, "fractions", p.Topic.String())
	assert.Equal(t, 7, p.NumProblems)
	assert.Equal(t, 3, p.Difficulty)
}

func TestParseParams_ValidationOrder(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
		want  string
	}{
		{
			name:  "grade first",
			query: map[string]string{"grade": "grade_9", "topic": "nope", "difficulty": "9", "action": "dance"},
			want:  "Invalid grade: grade_9. Valid grades: ",
		},
		{
			name:  "topic second",
			query: map[string]string{"topic": "nope", "difficulty": "9", "action": "dance"},
			want:  "Invalid topic: nope. Valid topics: ",
		},
		{
			name:  "difficulty third",
			query: map[string]string{"difficulty": "9", "num_problems": "99", "action": "dance"},
			want:  "Difficulty must be between 1 and 5",
		},
		{
			name:  "problem count fourth",
			query: map[string]string{"num_problems": "99", "action": "dance"},
			want:  "Number of problems must be between 1 and 20",
		},
		{
			name:  "action fifth",
			query: map[string]string{"action": "dance"},
			want:  "Invalid action: dance. Valid actions: generate, explain, worksheet",
		},
		{
			name:  "topic fit last",
			query: map[string]string{"grade": "kindergarten", "topic": "division"},
			want:  "Topic 'division' is not appropriate for kindergarten. Valid topics: ",
		},
		{
			name:  "non-integer count",
			query: map[string]string{"num_problems": "five"},
			want:  "num_problems must be an integer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParams(nil, tt.query)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), tt.want), err.Error())
		})
	}
}

func TestParseParams_RejectsNonObjectBody(t *testing.T) {
	_, err := ParseParams([]byte(`[1,2]`), nil)
	require.Error(t, err)

	_, err = ParseParams([]byte(`{"difficulty": 2.5}`), nil)
	require.EqualError(t, err, "difficulty must be an integer")
}

func TestHandle_StatusMapping(t *testing.T) {
	ctx := context.Background()

	gen := &fakeGenerator{}
	h := NewHandler(gen, false, nil)
	resp := h.Handle(ctx, Request{Query: map[string]string{"action": "explain", "topic": "counting", "grade": "kindergarten"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"explain"}, gen.calls)

	resp = h.Handle(ctx, Request{Query: map[string]string{"grade": "kindergarten", "topic": "division"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, gen.calls, 1)

	failing := &fakeGenerator{err: errors.New("provider exploded")}
	resp = NewHandler(failing, false, nil).Handle(ctx, Request{})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, ErrorBody{Error: "Internal server error"}, resp.Body)
}

func TestHandle_PassesParamsAndRenderFlag(t *testing.T) {
	gen := &fakeGenerator{}
	resp := NewHandler(gen, true, nil).Handle(context.Background(), Request{Body: []byte(`{"grade":"grade_4","topic":"decimals","num_problems":12,"difficulty":4}`)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "grade_4", gen.problems.Grade.String())
	assert.Equal(t, 12, gen.problems.NumProblems)
	assert.Equal(t, 4, gen.problems.Difficulty)
	assert.True(t, gen.problems.Render)
	assert.True(t, gen.problems.IncludeHints)
	assert.True(t, gen.problems.IncludeReview)
}

func newTestRouter(gen Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(gen, false, nil), nil)
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(&fakeGenerator{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"math-problems-generator","version":"0.1.0"}`, rec.Body.String())
	assertCORS(t, rec)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRouter_GenerateBadRequest(t *testing.T) {
	r := newTestRouter(&fakeGenerator{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate?difficulty=7", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Difficulty must be between 1 and 5", body.Error)
	assertCORS(t, rec)
}

func TestRouter_GeneratePostWithOfflineProvider(t *testing.T) {
	provider := llm.NewOfflineProvider()
	svc := generator.NewService(content.NewRequestor(provider, content.DefaultConfig(), nil), nil, nil)
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"grade":"grade_2","topic":"addition","num_problems":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res generator.ProblemsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.NumProblems)
	assert.Contains(t, res.Problems, "Problem 2:")
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, provider.CallCount())
	assertCORS(t, rec)
}

func TestRouter_Preflight(t *testing.T) {
	r := newTestRouter(&fakeGenerator{})

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PreflightWithoutOrigin(t *testing.T) {
	r := newTestRouter(&fakeGenerator{})

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assertCORS(t, rec)
}
