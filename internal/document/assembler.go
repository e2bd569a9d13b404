package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/mathgen/internal/curriculum"
)

// Renderer typesets a Document.
type Renderer interface {
	Render(doc *Document, w io.Writer) error
}

// Assembler builds documents and writes them into OutputDir.
type Assembler struct {
	OutputDir string
	Renderer  Renderer
	Now       func() time.Time
}

// NewAssembler returns an assembler that renders PDFs into dir.
func NewAssembler(dir string) *Assembler {
	return &Assembler{OutputDir: dir, Renderer: NewPDFRenderer(), Now: time.Now}
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Problems writes a problems document and returns its path.
func (a *Assembler) Problems(in ProblemsInput) (string, error) {
	date := a.now()
	doc := BuildProblems(in, date)
	return a.write(doc, Filename(in.Grade.String(), in.Topic.String(), DocProblems, in.Frequency, date))
}

// Worksheet writes a worksheet document and returns its path.
func (a *Assembler) Worksheet(grade curriculum.GradeLevel, topic curriculum.Topic, frequency, text string) (string, error) {
	date := a.now()
	doc := BuildWorksheet(topic, text)
	return a.write(doc, Filename(grade.String(), topic.String(), DocWorksheet, frequency, date))
}

// Concept writes a concept document and returns its path.
func (a *Assembler) Concept(grade curriculum.GradeLevel, topic curriculum.Topic, frequency, explanation string) (string, error) {
	date := a.now()
	doc := BuildConcept(grade, topic, explanation, date)
	return a.write(doc, Filename(grade.String(), topic.String(), DocConcepts, frequency, date))
}

func (a *Assembler) write(doc *Document, name string) (string, error) {
	if err := os.MkdirAll(a.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(a.OutputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := a.Renderer.Render(doc, f); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
