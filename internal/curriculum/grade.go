package curriculum

import (
	"fmt"
	"strings"
)

// GradeLevel identifies an elementary school year. The string value is the
// stable identifier used in persisted records, file names and requests.
type GradeLevel string

const (
	Kindergarten GradeLevel = "kindergarten"
	Grade1       GradeLevel = "grade_1"
	Grade2       GradeLevel = "grade_2"
	Grade3       GradeLevel = "grade_3"
	Grade4       GradeLevel = "grade_4"
	Grade5       GradeLevel = "grade_5"
)

// AllGrades returns every grade level in curriculum order.
func AllGrades() []GradeLevel {
	return []GradeLevel{
		Kindergarten,
		Grade1,
		Grade2,
		Grade3,
		Grade4,
		Grade5,
	}
}

// ParseGrade converts an identifier such as "grade_3" into a GradeLevel.
func ParseGrade(s string) (GradeLevel, error) {
	g := GradeLevel(strings.TrimSpace(s))
	for _, known := range AllGrades() {
		if g == known {
			return g, nil
		}
	}
	return "", &ValidationError{
		Field:   "grade",
		Message: fmt.Sprintf("Invalid grade: %s. Valid grades: %s", s, formatList(gradeStrings(AllGrades()))),
	}
}

func (g GradeLevel) String() string { return string(g) }

// Label is the lower-case phrase used inside prompts ("grade 3").
func (g GradeLevel) Label() string {
	return strings.ReplaceAll(string(g), "_", " ")
}

// DisplayName returns a human-readable name for a grade.
func (g GradeLevel) DisplayName() string {
	switch g {
	case Kindergarten:
		return "Kindergarten"
	case Grade1:
		return "Grade 1"
	case Grade2:
		return "Grade 2"
	case Grade3:
		return "Grade 3"
	case Grade4:
		return "Grade 4"
	case Grade5:
		return "Grade 5"
	default:
		return titleCase(string(g))
	}
}

func gradeStrings(grades []GradeLevel) []string {
	out := make([]string, len(grades))
	for i, g := range grades {
		out[i] = string(g)
	}
	return out
}
