// Package generator runs the content actions (problem sets, concept
// explanations, worksheets) and the daily curriculum cycle on top of the
// content requestor, the progression tracker and the document assembler.
package generator

import "github.com/abhisek/mathgen/internal/curriculum"

// Frequency labels used in document file names.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// ProblemsRequest asks for a problem set.
type ProblemsRequest struct {
	Grade         curriculum.GradeLevel
	Topic         curriculum.Topic
	NumProblems   int
	Difficulty    int
	IncludeHints  bool
	IncludeReview bool
	Render        bool
	Frequency     string
}

// NewProblemsRequest returns a request with the default settings: five
// problems at difficulty 1 with review, hints and a daily document.
func NewProblemsRequest(grade curriculum.GradeLevel, topic curriculum.Topic) ProblemsRequest {
	return ProblemsRequest{
		Grade:         grade,
		Topic:         topic,
		NumProblems:   5,
		Difficulty:    1,
		IncludeHints:  true,
		IncludeReview: true,
		Render:        true,
		Frequency:     FrequencyDaily,
	}
}

// ProblemsResult holds the generated problem set.
type ProblemsResult struct {
	RunID       string                `json:"run_id"`
	Grade       curriculum.GradeLevel `json:"grade"`
	Topic       curriculum.Topic      `json:"topic"`
	NumProblems int                   `json:"num_problems"`
	Difficulty  int                   `json:"difficulty"`
	Problems    string                `json:"problems"`
	Review      string                `json:"review,omitempty"`
	Hints       string                `json:"hints,omitempty"`
	// Result is the output of the last request in the run.
	Result      string   `json:"result"`
	TasksOutput []string `json:"tasks_output"`
	PDFPath     string   `json:"pdf_path,omitempty"`
}

// ExplainRequest asks for a concept explanation.
type ExplainRequest struct {
	Grade     curriculum.GradeLevel
	Topic     curriculum.Topic
	Render    bool
	Frequency string
}

func NewExplainRequest(grade curriculum.GradeLevel, topic curriculum.Topic) ExplainRequest {
	return ExplainRequest{Grade: grade, Topic: topic, Render: true, Frequency: FrequencyWeekly}
}

// ExplainResult holds a concept explanation.
type ExplainResult struct {
	RunID       string                `json:"run_id"`
	Grade       curriculum.GradeLevel `json:"grade"`
	Topic       curriculum.Topic      `json:"topic"`
	Description string                `json:"description"`
	Explanation string                `json:"explanation"`
	PDFPath     string                `json:"pdf_path,omitempty"`
}

// WorksheetRequest asks for a compiled worksheet.
type WorksheetRequest struct {
	Grade       curriculum.GradeLevel
	Topic       curriculum.Topic
	NumProblems int
	Difficulty  int
	Render      bool
	Frequency   string
}

func NewWorksheetRequest(grade curriculum.GradeLevel, topic curriculum.Topic) WorksheetRequest {
	return WorksheetRequest{
		Grade:       grade,
		Topic:       topic,
		NumProblems: 10,
		Difficulty:  1,
		Render:      true,
		Frequency:   FrequencyWeekly,
	}
}

// WorksheetResult holds a compiled worksheet.
type WorksheetResult struct {
	RunID       string                `json:"run_id"`
	Grade       curriculum.GradeLevel `json:"grade"`
	Topic       curriculum.Topic      `json:"topic"`
	NumProblems int                   `json:"num_problems"`
	Difficulty  int                   `json:"difficulty"`
	Worksheet   string                `json:"worksheet"`
	PDFPath     string                `json:"pdf_path,omitempty"`
}

// Daily cycle statuses.
const (
	StatusSuccess   = "success"
	StatusCompleted = "completed"
)

// DailyOptions configures one daily cycle.
type DailyOptions struct {
	NumProblems  int
	ConceptGuide bool
	Worksheet    bool
}

func DefaultDailyOptions() DailyOptions {
	return DailyOptions{NumProblems: 10, ConceptGuide: true, Worksheet: true}
}

// ConceptGuide describes the concept document of a daily cycle.
type ConceptGuide struct {
	PDFPath     string `json:"pdf_path"`
	Description string `json:"description"`
}

// DailyWorksheet describes the worksheet document of a daily cycle.
type DailyWorksheet struct {
	PDFPath     string `json:"pdf_path"`
	NumProblems int    `json:"num_problems"`
}

// DailyResult reports one daily cycle. When the curriculum is finished
// only Status, Message and TotalDays are set.
type DailyResult struct {
	Status        string                `json:"status"`
	Message       string                `json:"message,omitempty"`
	TotalDays     int                   `json:"total_days,omitempty"`
	RunID         string                `json:"run_id,omitempty"`
	Grade         curriculum.GradeLevel `json:"grade,omitempty"`
	Topic         curriculum.Topic      `json:"topic,omitempty"`
	Day           int                   `json:"day,omitempty"`
	TopicSequence int                   `json:"topic_sequence,omitempty"`
	TotalTopics   int                   `json:"total_topics,omitempty"`
	Date          string                `json:"date,omitempty"`
	ConceptGuide  *ConceptGuide         `json:"concept_guide,omitempty"`
	Worksheet     *DailyWorksheet       `json:"worksheet,omitempty"`
}
