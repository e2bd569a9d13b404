package curriculum

import (
	"fmt"
	"strings"
	"unicode"
)

// Topic is a math subject area. Like GradeLevel, its string value is the
// stable serialized identifier; display text is derived separately.
type Topic string

const (
	Counting       Topic = "counting"
	Addition       Topic = "addition"
	Subtraction    Topic = "subtraction"
	Multiplication Topic = "multiplication"
	Division       Topic = "division"
	Fractions      Topic = "fractions"
	Decimals       Topic = "decimals"
	Geometry       Topic = "geometry"
	Measurement    Topic = "measurement"
	WordProblems   Topic = "word_problems"
	Patterns       Topic = "patterns"
	Time           Topic = "time"
	Money          Topic = "money"
)

// AllTopics returns every topic in declaration order.
func AllTopics() []Topic {
	return []Topic{
		Counting,
		Addition,
		Subtraction,
		Multiplication,
		Division,
		Fractions,
		Decimals,
		Geometry,
		Measurement,
		WordProblems,
		Patterns,
		Time,
		Money,
	}
}

// ParseTopic converts an identifier such as "word_problems" into a Topic.
func ParseTopic(s string) (Topic, error) {
	t := Topic(strings.TrimSpace(s))
	for _, known := range AllTopics() {
		if t == known {
			return t, nil
		}
	}
	return "", &ValidationError{
		Field:   "topic",
		Message: fmt.Sprintf("Invalid topic: %s. Valid topics: %s", s, formatList(topicStrings(AllTopics()))),
	}
}

func (t Topic) String() string { return string(t) }

// Label is the lower-case phrase used inside prompts ("word problems").
func (t Topic) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// DisplayName returns the title-cased name ("Word Problems").
func (t Topic) DisplayName() string {
	return titleCase(string(t))
}

func topicStrings(topics []Topic) []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = string(t)
	}
	return out
}

// titleCase turns "word_problems" into "Word Problems".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
