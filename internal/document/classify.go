// Package document turns generated text into paginated documents. Text is
// classified line by line into blocks, the blocks are arranged into a
// Document, and a Renderer typesets it.
package document

import (
	"regexp"
	"strconv"
	"strings"
)

// Role is the structural role of a classified line or block.
type Role string

const (
	RoleHeader  Role = "header"
	RoleProblem Role = "problem"
	RoleAnswer  Role = "answer"
	RoleHint    Role = "hint"
	RolePlain   Role = "plain"
)

// Block is a classified unit of generated text.
type Block struct {
	Role Role
	// Ordinal is the problem number when the source line carried one.
	Ordinal int
	// Heading is rendered in bold above Body.
	Heading string
	Body    []string
	// Decorated asks the renderer for a leading marker (hint lines).
	Decorated bool
}

// Text joins heading and body lines.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Body)+1)
	if b.Heading != "" {
		parts = append(parts, b.Heading)
	}
	parts = append(parts, b.Body...)
	return strings.Join(parts, "\n")
}

// NoProblemsPlaceholder replaces a problem listing when there is no text.
const NoProblemsPlaceholder = "No problems generated."

var problemNumberRe = regexp.MustCompile(`^Problem (\d+)`)

// ClassifyLine assigns a role to one trimmed line of generated text.
// "Problem N" starts a problem, "Question:" is the statement, "Answer:" and
// "Explanation:" belong to the answer key, and "Hint" lines are hints.
func ClassifyLine(line string) Role {
	switch {
	case strings.HasPrefix(line, "Problem "):
		return RoleHeader
	case strings.HasPrefix(line, "Question:"):
		return RoleProblem
	case strings.HasPrefix(line, "Answer:"), strings.HasPrefix(line, "Explanation:"):
		return RoleAnswer
	case strings.HasPrefix(line, "Hint"):
		return RoleHint
	default:
		return RolePlain
	}
}

func problemOrdinal(line string) int {
	m := problemNumberRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// nonEmptyLines yields trimmed, non-blank lines.
func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// containsAnyFold reports whether s contains any of the lowercase words.
func containsAnyFold(s string, words ...string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ProblemsView builds the student-facing problem listing: one block per
// problem with its statement. Answers and explanations are left out, as
// are lines that look like review commentary.
func ProblemsView(text string) []Block {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return []Block{{Role: RolePlain, Body: []string{NoProblemsPlaceholder}}}
	}

	var (
		out     []Block
		current *Block
	)
	flush := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
		}
	}

	for _, line := range lines {
		switch ClassifyLine(line) {
		case RoleHeader:
			flush()
			current = &Block{Role: RoleProblem, Ordinal: problemOrdinal(line), Heading: line}
		case RoleProblem:
			if current == nil {
				current = &Block{Role: RoleProblem}
			}
			current.Body = append(current.Body, line)
		case RoleAnswer:
		default:
			if current != nil && !containsAnyFold(line, "quality", "verified", "assessment") {
				current.Body = append(current.Body, line)
			}
		}
	}
	flush()

	if len(out) == 0 {
		return []Block{{Role: RolePlain, Body: []string{NoProblemsPlaceholder}}}
	}
	return out
}

// AnswerKeyView routes the same problem text to the answer key: problem
// headings, statements, answers and explanations, one block per line.
func AnswerKeyView(text string) []Block {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return []Block{{Role: RolePlain, Body: []string{NoProblemsPlaceholder}}}
	}

	var (
		out       []Block
		inProblem bool
	)
	for _, line := range lines {
		switch ClassifyLine(line) {
		case RoleHeader:
			inProblem = true
			out = append(out, Block{Role: RoleHeader, Ordinal: problemOrdinal(line), Heading: line})
		case RoleAnswer:
			out = append(out, Block{Role: RoleAnswer, Body: []string{line}})
		case RoleProblem:
			if inProblem {
				out = append(out, Block{Role: RoleProblem, Body: []string{line}})
			}
		}
	}
	return out
}

// HintsView groups hint text under problem headings. Hint lines are
// decorated; other lines continue the current group unless they look like
// review commentary. Lines before the first problem heading are dropped.
func HintsView(text string) []Block {
	var (
		out     []Block
		inGroup bool
	)
	for _, line := range nonEmptyLines(text) {
		switch {
		case strings.HasPrefix(line, "Problem "):
			inGroup = true
			out = append(out, Block{Role: RoleHeader, Ordinal: problemOrdinal(line), Heading: line})
		case strings.HasPrefix(line, "Hint"):
			out = append(out, Block{Role: RoleHint, Body: []string{line}, Decorated: true})
		case inGroup && !containsAnyFold(line, "quality", "assessment"):
			out = append(out, Block{Role: RoleHint, Body: []string{line}})
		}
	}
	return out
}

var worksheetHeadingWords = []string{"introduction", "review", "problems", "answer key", "challenge"}

// splitSections splits on blank lines and drops empty sections.
func splitSections(text string) []string {
	var out []string
	for _, s := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WorksheetView renders each blank-line separated section as a heading
// when it mentions a worksheet section keyword, otherwise as body text.
func WorksheetView(text string) []Block {
	var out []Block
	for _, s := range splitSections(text) {
		role := RolePlain
		if containsAnyFold(s, worksheetHeadingWords...) {
			role = RoleHeader
		}
		out = append(out, Block{Role: role, Body: []string{s}})
	}
	return out
}

// ConceptView turns each blank-line separated section into a paragraph.
func ConceptView(text string) []Block {
	var out []Block
	for _, s := range splitSections(text) {
		out = append(out, Block{Role: RolePlain, Body: []string{s}})
	}
	return out
}
