package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/llm"
)

func testParams() Params {
	return Params{
		Grade:       curriculum.Grade2,
		Topic:       curriculum.WordProblems,
		NumProblems: 4,
		Difficulty:  2,
	}
}

func lastUserMessage(req llm.Request) string {
	return req.Messages[len(req.Messages)-1].Content
}

func TestRunProblemSetSequential(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse("Problem 1:\nQuestion: Q1\nAnswer: 1"),
		llm.TextResponse("Overall quality assessment: pass"),
		llm.TextResponse("Problem 1:\nHint 1: look closely"),
	)
	r := NewRequestor(mock, DefaultConfig(), nil)

	out, err := r.Run(context.Background(), ProblemSetPlan(true, true), testParams())
	require.NoError(t, err)

	assert.Equal(t, "Problem 1:\nQuestion: Q1\nAnswer: 1", out.Get(KindProblems))
	assert.Equal(t, "Overall quality assessment: pass", out.Get(KindReview))
	assert.Equal(t, "Problem 1:\nHint 1: look closely", out.Get(KindHints))

	calls := mock.Snapshot()
	require.Len(t, calls, 3)

	problems := lastUserMessage(calls[0])
	assert.Contains(t, problems, "Generate 4 math problems about word problems for grade 2 students at difficulty level 2 (out of 5).")
	assert.Contains(t, calls[0].System, "Math Problem Generator")
	assert.Equal(t, 2048, calls[0].MaxTokens)
	assert.InDelta(t, 0.7, calls[0].Temperature, 1e-9)
	assert.NotContains(t, problems, "Context from earlier steps")

	review := lastUserMessage(calls[1])
	assert.Contains(t, calls[1].System, "Math Problem Reviewer")
	assert.Contains(t, review, "### Problem set\nProblem 1:\nQuestion: Q1\nAnswer: 1")

	hints := lastUserMessage(calls[2])
	assert.Contains(t, calls[2].System, "Math Hint Provider")
	assert.Contains(t, hints, "2-3 progressive hints")
	assert.Contains(t, hints, "### Problem set")
	assert.NotContains(t, hints, "### Problem review", "hints only see the problem set")
}

func TestRunWorksheetFeedsAllContext(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse("EXPLANATION"),
		llm.TextResponse("PROBLEMS"),
		llm.TextResponse("REVIEW"),
		llm.TextResponse("HINTS"),
		llm.TextResponse("WORKSHEET"),
	)
	r := NewRequestor(mock, DefaultConfig(), nil)

	out, err := r.Run(context.Background(), WorksheetPlan(), testParams())
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindExplanation, KindProblems, KindReview, KindHints, KindWorksheet}, out.Kinds())

	calls := mock.Snapshot()
	require.Len(t, calls, 5)
	ws := lastUserMessage(calls[4])
	assert.True(t, strings.HasPrefix(ws, "Compile a complete word problems worksheet for grade 2 students."))
	assert.Contains(t, calls[4].System, "Math Concept Expert")

	// Context appears in assembly order.
	iE := strings.Index(ws, "EXPLANATION")
	iP := strings.Index(ws, "PROBLEMS")
	iR := strings.Index(ws, "REVIEW")
	iH := strings.Index(ws, "HINTS")
	require.True(t, iE > 0 && iP > 0 && iR > 0 && iH > 0)
	assert.True(t, iE < iP && iP < iR && iR < iH)
}

func TestRunStopsOnFirstFailure(t *testing.T) {
	cause := &llm.ErrProviderUnavailable{Err: errors.New("503")}
	mock := llm.NewMockProvider(
		llm.TextResponse("PROBLEMS"),
		llm.MockResponse{Err: cause},
		llm.TextResponse("HINTS"),
	)
	r := NewRequestor(mock, DefaultConfig(), nil)

	out, err := r.Run(context.Background(), ProblemSetPlan(true, true), testParams())
	require.Error(t, err)
	assert.Nil(t, out)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindReview, genErr.Kind)

	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, 2, mock.CallCount(), "no retry and no further requests")
}

func TestRunConcurrentMatchesSequential(t *testing.T) {
	reply := func(req llm.Request) llm.MockResponse {
		msg := lastUserMessage(req)
		switch {
		case strings.HasPrefix(msg, "Explain"):
			return llm.TextResponse("EXPLANATION")
		case strings.HasPrefix(msg, "Generate"):
			return llm.TextResponse("PROBLEMS")
		case strings.HasPrefix(msg, "Review"):
			return llm.TextResponse("REVIEW")
		case strings.HasPrefix(msg, "Create helpful hints"):
			return llm.TextResponse("HINTS")
		default:
			return llm.TextResponse("WORKSHEET")
		}
	}

	seqMock := llm.NewMockProvider()
	seqMock.Fallback = reply
	conMock := llm.NewMockProvider()
	conMock.Fallback = reply

	cfg := DefaultConfig()
	seq, err := NewRequestor(seqMock, cfg, nil).Run(context.Background(), WorksheetPlan(), testParams())
	require.NoError(t, err)

	cfg.Concurrent = true
	con, err := NewRequestor(conMock, cfg, nil).Run(context.Background(), WorksheetPlan(), testParams())
	require.NoError(t, err)

	assert.Equal(t, seq, con)
	assert.Equal(t, 5, conMock.CallCount())

	// The worksheet request sees the same context either way.
	seqCalls, conCalls := seqMock.Snapshot(), conMock.Snapshot()
	assert.Equal(t, lastUserMessage(seqCalls[4]), lastUserMessage(conCalls[4]))
}

func TestRunTagsPurpose(t *testing.T) {
	var purposes []string
	mock := llm.NewMockProvider()
	mock.Fallback = func(llm.Request) llm.MockResponse { return llm.TextResponse("ok") }
	rec := purposeRecorder{inner: mock, seen: &purposes}

	_, err := NewRequestor(rec, DefaultConfig(), nil).Run(context.Background(), WorksheetPlan(), testParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"concept", "problems", "review", "hints", "worksheet"}, purposes)
}

func TestRunRequiresGradeAndTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewRequestor(mock, DefaultConfig(), nil).Run(context.Background(), ConceptPlan(), Params{})
	require.Error(t, err)
	assert.Equal(t, 0, mock.CallCount())
}

type purposeRecorder struct {
	inner llm.Provider
	seen  *[]string
}

func (p purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.seen = append(*p.seen, llm.PurposeFrom(ctx))
	return p.inner.Generate(ctx, req)
}

func (p purposeRecorder) ModelID() string { return p.inner.ModelID() }
