package curriculum

import "slices"

// gradeTopics is the ordered progression sequence per grade.
var gradeTopics = map[GradeLevel][]Topic{
	Kindergarten: {Counting, Addition, Subtraction, Patterns, Geometry},
	Grade1:       {Counting, Addition, Subtraction, Patterns, Geometry, Time, Measurement},
	Grade2:       {Addition, Subtraction, Multiplication, Geometry, Time, Money, Measurement, WordProblems},
	Grade3:       {Addition, Subtraction, Multiplication, Division, Fractions, Geometry, Time, Money, WordProblems},
	Grade4:       {Multiplication, Division, Fractions, Decimals, Geometry, Measurement, WordProblems},
	Grade5:       {Multiplication, Division, Fractions, Decimals, Geometry, Measurement, WordProblems},
}

// gradeDifficulty is the baseline difficulty (1-5) for each grade.
var gradeDifficulty = map[GradeLevel]int{
	Kindergarten: 1,
	Grade1:       1,
	Grade2:       2,
	Grade3:       3,
	Grade4:       4,
	Grade5:       5,
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// TopicsForGrade returns the ordered topic sequence for a grade. The
// returned slice is a copy; unknown grades yield an empty sequence.
func TopicsForGrade(g GradeLevel) []Topic {
	return slices.Clone(gradeTopics[g])
}

// DifficultyFor returns the baseline difficulty for a grade, defaulting
// to 1 for unknown grades.
func DifficultyFor(g GradeLevel) int {
	if d, ok := gradeDifficulty[g]; ok {
		return d
	}
	return MinDifficulty
}

// IsAppropriate reports whether topic appears in the grade's sequence.
func IsAppropriate(t Topic, g GradeLevel) bool {
	return slices.Contains(gradeTopics[g], t)
}

// ValidateTopic returns a *TopicNotAppropriateError when the topic is not
// part of the grade's sequence.
func ValidateTopic(t Topic, g GradeLevel) error {
	if IsAppropriate(t, g) {
		return nil
	}
	return &TopicNotAppropriateError{Topic: t, Grade: g, Valid: TopicsForGrade(g)}
}
