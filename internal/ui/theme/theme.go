package theme

import (
	"charm.land/lipgloss/v2"
)

// Terminal palette. The first four match the PDF palette in
// internal/document so CLI output and worksheets read alike.
var (
	Primary   = lipgloss.Color("#2E86AB") // Title blue
	Secondary = lipgloss.Color("#A23B72") // Heading plum
	Success   = lipgloss.Color("#18A558") // Answer green
	Accent    = lipgloss.Color("#F77F00") // Hint orange
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)
)

// States
var (
	OK = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	Rule = lipgloss.NewStyle().
		Foreground(Border)

	ProgressFilled = lipgloss.NewStyle().Foreground(Success)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Border)
)
