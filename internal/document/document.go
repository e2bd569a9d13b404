package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/mathgen/internal/curriculum"
)

// DocType names the kind of document in file names.
type DocType string

const (
	DocProblems  DocType = "problems"
	DocWorksheet DocType = "worksheet"
	DocConcepts  DocType = "concepts"
)

// Extension of every rendered document.
const Extension = "pdf"

// Tone selects the color family a section is rendered with.
type Tone string

const (
	ToneNormal Tone = ""
	ToneAnswer Tone = "answer"
	ToneHint   Tone = "hint"
)

// MetaLine is a "Label: value" line under the title.
type MetaLine struct {
	Label string
	Value string
}

// Section is an optional heading followed by blocks.
type Section struct {
	Heading string
	NewPage bool
	Tone    Tone
	Blocks  []Block
}

// Document is the renderer-independent layout.
type Document struct {
	Type        DocType
	Title       string
	Meta        []MetaLine
	StudentInfo bool
	Sections    []Section
}

// Filename builds "{grade}_{topic}_{docType}_{frequency}_{YYYYMMDD}.pdf".
// Spaces and slashes in the topic become underscores. Frequency is free
// form.
func Filename(grade, topic string, docType DocType, frequency string, date time.Time) string {
	safeTopic := strings.NewReplacer(" ", "_", "/", "_").Replace(topic)
	return fmt.Sprintf("%s_%s_%s_%s_%s.%s", grade, safeTopic, docType, frequency, date.Format("20060102"), Extension)
}

const metaDateLayout = "January 02, 2006"

// ProblemsInput is the text for a problems document.
type ProblemsInput struct {
	Grade     curriculum.GradeLevel
	Topic     curriculum.Topic
	Frequency string
	Problems  string
	// Hints is rendered on its own page when IncludeHints is set and the
	// text is non-empty.
	Hints          string
	IncludeHints   bool
	IncludeAnswers bool
}

// BuildProblems lays out the title, metadata, practice problems and the
// optional hints and answer key sections, in that order.
func BuildProblems(in ProblemsInput, date time.Time) *Document {
	doc := &Document{
		Type:  DocProblems,
		Title: "Math Problems - " + in.Topic.DisplayName(),
		Meta: []MetaLine{
			{"Grade", in.Grade.DisplayName()},
			{"Topic", in.Topic.DisplayName()},
			{"Date", date.Format(metaDateLayout)},
			{"Frequency", titleWord(in.Frequency)},
		},
		Sections: []Section{{Heading: "Practice Problems", Blocks: ProblemsView(in.Problems)}},
	}

	if in.IncludeHints && strings.TrimSpace(in.Hints) != "" {
		doc.Sections = append(doc.Sections, Section{
			Heading: "Hints & Tips",
			NewPage: true,
			Tone:    ToneHint,
			Blocks:  HintsView(in.Hints),
		})
	}
	if in.IncludeAnswers {
		doc.Sections = append(doc.Sections, Section{
			Heading: "Answer Key",
			NewPage: true,
			Tone:    ToneAnswer,
			Blocks:  AnswerKeyView(in.Problems),
		})
	}
	return doc
}

// BuildWorksheet lays out the title, the student info table and the
// compiled worksheet sections.
func BuildWorksheet(topic curriculum.Topic, text string) *Document {
	blocks := WorksheetView(text)
	if len(blocks) == 0 {
		blocks = []Block{{Role: RolePlain, Body: []string{"No worksheet content generated."}}}
	}
	return &Document{
		Type:        DocWorksheet,
		Title:       topic.DisplayName() + " Worksheet",
		StudentInfo: true,
		Sections:    []Section{{Blocks: blocks}},
	}
}

// BuildConcept lays out the title, metadata and explanation paragraphs.
func BuildConcept(grade curriculum.GradeLevel, topic curriculum.Topic, explanation string, date time.Time) *Document {
	blocks := ConceptView(explanation)
	if len(blocks) == 0 {
		blocks = []Block{{Role: RolePlain, Body: []string{"No explanation generated."}}}
	}
	return &Document{
		Type:  DocConcepts,
		Title: "Understanding " + topic.DisplayName(),
		Meta: []MetaLine{
			{"Grade Level", grade.DisplayName()},
			{"Date", date.Format(metaDateLayout)},
		},
		Sections: []Section{{Heading: "Concept Explanation", Blocks: blocks}},
	}
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
