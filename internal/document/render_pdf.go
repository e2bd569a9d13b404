package document

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

// Palette colors.
var (
	colorTitle   = rgb{0x2E, 0x86, 0xAB}
	colorHeading = rgb{0xA2, 0x3B, 0x72}
	colorAnswer  = rgb{0x18, 0xA5, 0x58}
	colorHint    = rgb{0xF7, 0x7F, 0x00}
	colorText    = rgb{0x00, 0x00, 0x00}
	colorMuted   = rgb{0x66, 0x66, 0x66}
)

const (
	pageMargin     = 20.0
	lineHeight     = 6.0
	problemIndent  = 7.0
	answerIndent   = 10.5
	conceptIndent  = 5.0
	studentCellW   = 76.2 // 3in
	studentCellH   = 9.0
	hintMarker     = "» "
	defaultCreator = "mathgen"
)

// PDFRenderer typesets documents as US Letter PDFs. Text is translated to
// cp1252 so the core fonts can render it; characters outside that code
// page degrade to '?'.
type PDFRenderer struct {
	Creator string
	// Now stamps the creation date; nil uses time.Now.
	Now func() time.Time
}

// NewPDFRenderer returns a renderer with default settings.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Creator: defaultCreator}
}

// Render writes doc as a PDF to w.
func (r *PDFRenderer) Render(doc *Document, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("render: nil document")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(r.Creator, true)
	pdf.SetSubject(string(doc.Type), true)
	pdf.SetCreationDate(now())
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		setColor(pdf, colorMuted)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	p := &pdfWriter{pdf: pdf, tr: tr}
	pdf.AddPage()
	p.title(doc.Title)
	p.meta(doc.Meta)
	if doc.StudentInfo {
		p.studentInfo()
	}
	for i, s := range doc.Sections {
		if s.NewPage && i > 0 {
			pdf.AddPage()
		}
		p.section(s)
	}

	if pdf.Err() {
		return fmt.Errorf("render %s: %w", doc.Type, pdf.Error())
	}
	return pdf.Output(w)
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func setColor(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

func (p *pdfWriter) title(text string) {
	p.pdf.SetFont("Helvetica", "B", 24)
	setColor(p.pdf, colorTitle)
	p.pdf.MultiCell(0, 12, p.tr(text), "", "C", false)
	p.pdf.Ln(4)
}

func (p *pdfWriter) meta(lines []MetaLine) {
	if len(lines) == 0 {
		return
	}
	p.pdf.SetFont("Helvetica", "", 11)
	setColor(p.pdf, colorText)
	for _, m := range lines {
		p.pdf.CellFormat(0, lineHeight, p.tr(m.Label+": "+m.Value), "", 1, "L", false, 0, "")
	}
	p.pdf.Ln(4)
}

func (p *pdfWriter) studentInfo() {
	p.pdf.SetFont("Helvetica", "", 11)
	setColor(p.pdf, colorText)
	rows := [][2]string{
		{"Name: _______________", "Date: _______________"},
		{"Grade: ______________", "Score: ______________"},
	}
	for _, row := range rows {
		p.pdf.CellFormat(studentCellW, studentCellH, row[0], "", 0, "L", false, 0, "")
		p.pdf.CellFormat(studentCellW, studentCellH, row[1], "", 1, "L", false, 0, "")
	}
	p.pdf.Ln(6)
}

func (p *pdfWriter) heading(text string) {
	p.pdf.SetFont("Helvetica", "B", 16)
	setColor(p.pdf, colorHeading)
	p.pdf.MultiCell(0, 9, p.tr(text), "", "L", false)
	p.pdf.Ln(2)
}

// indented writes a wrapped paragraph starting indent mm from the margin.
func (p *pdfWriter) indented(indent float64, text string) {
	left, _, _, _ := p.pdf.GetMargins()
	p.pdf.SetX(left + indent)
	p.pdf.MultiCell(0, lineHeight, p.tr(text), "", "L", false)
}

func (p *pdfWriter) section(s Section) {
	if s.Heading != "" {
		p.heading(s.Heading)
	}
	for _, b := range s.Blocks {
		p.block(s.Tone, b)
	}
}

func (p *pdfWriter) block(tone Tone, b Block) {
	switch {
	case tone == ToneAnswer:
		p.answerBlock(b)
	case tone == ToneHint:
		p.hintBlock(b)
	case b.Role == RoleProblem:
		p.problemBlock(b)
	case b.Role == RoleHeader:
		p.pdf.SetFont("Helvetica", "B", 13)
		setColor(p.pdf, colorHeading)
		p.pdf.MultiCell(0, 8, p.tr(b.Text()), "", "L", false)
		p.pdf.Ln(2)
	default:
		p.pdf.SetFont("Helvetica", "", 11)
		setColor(p.pdf, colorText)
		p.indented(conceptIndent, b.Text())
		p.pdf.Ln(3)
	}
}

func (p *pdfWriter) problemBlock(b Block) {
	if b.Heading != "" {
		p.pdf.SetFont("Helvetica", "B", 12)
		setColor(p.pdf, colorText)
		p.pdf.MultiCell(0, lineHeight, p.tr(b.Heading), "", "L", false)
	}
	p.pdf.SetFont("Helvetica", "", 12)
	setColor(p.pdf, colorText)
	for _, line := range b.Body {
		p.indented(problemIndent, line)
	}
	p.pdf.Ln(4)
}

func (p *pdfWriter) answerBlock(b Block) {
	switch b.Role {
	case RoleHeader:
		p.pdf.Ln(2)
		p.pdf.SetFont("Helvetica", "B", 11)
		setColor(p.pdf, colorAnswer)
		p.pdf.MultiCell(0, lineHeight, p.tr(b.Heading), "", "L", false)
	case RoleAnswer:
		p.pdf.SetFont("Helvetica", "", 11)
		setColor(p.pdf, colorAnswer)
		p.indented(answerIndent, b.Text())
	default:
		p.pdf.SetFont("Helvetica", "", 11)
		setColor(p.pdf, colorText)
		p.indented(answerIndent, b.Text())
	}
}

func (p *pdfWriter) hintBlock(b Block) {
	if b.Role == RoleHeader {
		p.pdf.Ln(2)
		p.pdf.SetFont("Helvetica", "B", 11)
		setColor(p.pdf, colorText)
		p.pdf.MultiCell(0, lineHeight, p.tr(b.Heading), "", "L", false)
		return
	}
	p.pdf.SetFont("Helvetica", "I", 10)
	setColor(p.pdf, colorHint)
	text := b.Text()
	if b.Decorated {
		text = hintMarker + text
	}
	p.indented(problemIndent, text)
}
