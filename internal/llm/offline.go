package llm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var problemCountRe = regexp.MustCompile(`Generate (\d+) math problems`)

// NewOfflineProvider returns a MockProvider whose fallback produces
// placeholder text shaped like real output: numbered problems when asked
// for problems, "Hint" lines when asked for hints. It backs the "mock"
// provider so the CLI and server run without credentials.
func NewOfflineProvider() *MockProvider {
	m := NewMockProvider()
	m.Fallback = offlineReply
	return m
}

func offlineReply(req Request) MockResponse {
	var prompt string
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}

	var b strings.Builder
	switch {
	case problemCountRe.MatchString(prompt):
		n, _ := strconv.Atoi(problemCountRe.FindStringSubmatch(prompt)[1])
		for i := 1; i <= n; i++ {
			fmt.Fprintf(&b, "Problem %d:\nQuestion: What is %d + %d?\nAnswer: %d\nExplanation: Count on %d from %d.\n\n",
				i, i, i+1, 2*i+1, i+1, i)
		}
	case strings.Contains(prompt, "progressive hints"):
		b.WriteString("Problem 1:\nHint 1: Start with the bigger number.\nHint 2: Count on using your fingers.\n")
	case strings.Contains(prompt, "Compile a complete"):
		b.WriteString("Introduction\n\nLet's practice today!\n\nProblems\n\n1. What is 1 + 2?\n\nAnswer Key\n\n1. 3\n\nChallenge Yourself\n\nWhat is 10 + 10?")
	default:
		b.WriteString("Offline placeholder response.\n\nConfigure a provider API key for generated content.")
	}
	return TextResponse(strings.TrimSpace(b.String()))
}
