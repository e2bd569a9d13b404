package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/mathgen/internal/curriculum"
)

// Actions accepted by the generate endpoint.
const (
	ActionGenerate  = "generate"
	ActionExplain   = "explain"
	ActionWorksheet = "worksheet"
)

// ValidateAction returns a *curriculum.ValidationError for an unknown action.
func ValidateAction(action string) error {
	switch action {
	case ActionGenerate, ActionExplain, ActionWorksheet:
		return nil
	}
	return &curriculum.ValidationError{
		Field:   "action",
		Message: fmt.Sprintf("Invalid action: %s. Valid actions: generate, explain, worksheet", action),
	}
}

// Defaults applied when a field is absent from both body and query.
const (
	DefaultGrade       = "grade_1"
	DefaultTopic       = "addition"
	DefaultNumProblems = 5
	DefaultDifficulty  = 1
	DefaultAction      = ActionGenerate
)

// Params are the validated inputs of a generate call.
type Params struct {
	Grade       curriculum.GradeLevel
	Topic       curriculum.Topic
	NumProblems int
	Difficulty  int
	Action      string
}

// rawParams holds the merged, unvalidated field values.
type rawParams struct {
	grade, topic, action    string
	numProblems, difficulty int
}

// pick returns the body value when it is present and non-empty, else the
// query value, else def.
func pick(body map[string]any, query map[string]string, key, def string) any {
	if v, ok := body[key]; ok && v != nil {
		if s, isStr := v.(string); !isStr || s != "" {
			return v
		}
	}
	if v, ok := query[key]; ok && v != "" {
		return v
	}
	return def
}

func toInt(field string, v any) (int, error) {
	invalid := &curriculum.ValidationError{Field: field, Message: fmt.Sprintf("%s must be an integer", field)}
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err == nil {
			return i, nil
		}
		f, ferr := n.Float64()
		if ferr != nil || f != math.Trunc(f) {
			return 0, invalid
		}
		return int(f), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, invalid
		}
		return i, nil
	default:
		return 0, invalid
	}
}

func toString(field string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	default:
		return "", &curriculum.ValidationError{Field: field, Message: fmt.Sprintf("%s must be a string", field)}
	}
}

// mergeParams decodes body (a JSON object, possibly empty) and fills
// missing fields from the query and the defaults. Body fields win.
func mergeParams(body []byte, query map[string]string) (rawParams, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			return rawParams{}, &curriculum.ValidationError{Field: "body", Message: "Request body must be a JSON object"}
		}
	}

	var (
		raw rawParams
		err error
	)
	if raw.grade, err = toString("grade", pick(fields, query, "grade", DefaultGrade)); err != nil {
		return raw, err
	}
	if raw.topic, err = toString("topic", pick(fields, query, "topic", DefaultTopic)); err != nil {
		return raw, err
	}
	if raw.numProblems, err = toInt("num_problems", pick(fields, query, "num_problems", strconv.Itoa(DefaultNumProblems))); err != nil {
		return raw, err
	}
	if raw.difficulty, err = toInt("difficulty", pick(fields, query, "difficulty", strconv.Itoa(DefaultDifficulty))); err != nil {
		return raw, err
	}
	if raw.action, err = toString("action", pick(fields, query, "action", DefaultAction)); err != nil {
		return raw, err
	}
	return raw, nil
}

// ParseParams merges body and query fields and validates them in order:
// grade, topic, difficulty, problem count, action, then topic fit for
// the grade. The first failure is returned.
func ParseParams(body []byte, query map[string]string) (Params, error) {
	raw, err := mergeParams(body, query)
	if err != nil {
		return Params{}, err
	}

	grade, err := curriculum.ParseGrade(raw.grade)
	if err != nil {
		return Params{}, err
	}
	topic, err := curriculum.ParseTopic(raw.topic)
	if err != nil {
		return Params{}, err
	}
	if err := curriculum.ValidateDifficulty(raw.difficulty); err != nil {
		return Params{}, err
	}
	if err := curriculum.ValidateProblemCount(raw.numProblems); err != nil {
		return Params{}, err
	}
	if err := ValidateAction(raw.action); err != nil {
		return Params{}, err
	}
	if err := curriculum.ValidateTopic(topic, grade); err != nil {
		return Params{}, err
	}

	return Params{
		Grade:       grade,
		Topic:       topic,
		NumProblems: raw.numProblems,
		Difficulty:  raw.difficulty,
		Action:      raw.action,
	}, nil
}
