package curriculum

import "fmt"

// ValidationError reports caller input that failed validation. Message is
// user-facing and returned verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TopicNotAppropriateError reports a topic outside a grade's sequence.
type TopicNotAppropriateError struct {
	Topic Topic
	Grade GradeLevel
	Valid []Topic
}

func (e *TopicNotAppropriateError) Error() string {
	return fmt.Sprintf("Topic '%s' is not appropriate for %s. Valid topics: %s",
		e.Topic, e.Grade, formatList(topicStrings(e.Valid)))
}

// ValidateDifficulty checks d is within [MinDifficulty, MaxDifficulty].
func ValidateDifficulty(d int) error {
	if d < MinDifficulty || d > MaxDifficulty {
		return &ValidationError{Field: "difficulty", Message: "Difficulty must be between 1 and 5"}
	}
	return nil
}

const (
	MinProblems = 1
	MaxProblems = 20
)

// ValidateProblemCount checks n is within [MinProblems, MaxProblems].
func ValidateProblemCount(n int) error {
	if n < MinProblems || n > MaxProblems {
		return &ValidationError{Field: "num_problems", Message: "Number of problems must be between 1 and 20"}
	}
	return nil
}
