// Package report exports progress records as an XLSX workbook.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/mathgen/internal/progress"
)

const (
	SheetSummary  = "Summary"
	SheetHistory  = "History"
	SheetWeekPlan = "Week Plan"
)

var (
	summaryHeaders  = []string{"Grade", "Total Topics", "Current Topic", "Topic Index", "Days Completed", "Topics Remaining", "Progress %"}
	historyHeaders  = []string{"Grade", "Day", "Date", "Topic", "Topic Index", "Concept Guide", "Worksheet"}
	weekPlanHeaders = []string{"Grade", "Day", "Topic", "Topic Position", "Day In Topic", "Days For Topic", "Focus"}
)

// Write renders one row per grade on the summary sheet, every history
// entry on the history sheet, and each grade's upcoming week plan.
func Write(w io.Writer, records []*progress.Progress, daysPerTopic int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetHistory, SheetWeekPlan} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %s: %w", name, err)
		}
	}

	sw := sheetWriter{f: f}
	sw.header(SheetSummary, summaryHeaders)
	sw.header(SheetHistory, historyHeaders)
	sw.header(SheetWeekPlan, weekPlanHeaders)

	historyRow, planRow := 2, 2
	for i, p := range records {
		s := progress.Summarize(p)
		sw.row(SheetSummary, i+2, string(s.Grade), s.TotalTopics, s.CurrentTopic, s.CurrentTopicIndex,
			s.DaysCompleted, s.TopicsRemaining, s.ProgressPercentage)

		for _, h := range p.History {
			sw.row(SheetHistory, historyRow, string(p.Grade), h.Day, h.Date, h.Topic.String(), h.TopicIndex,
				deref(h.ConceptGuidePath), deref(h.WorksheetPath))
			historyRow++
		}

		for _, e := range progress.WeekPlan(p, daysPerTopic) {
			sw.row(SheetWeekPlan, planRow, string(p.Grade), e.Day, e.Topic.String(), e.TopicPosition,
				e.DayInTopic, e.TotalDaysForTopic, e.Focus)
			planRow++
		}
	}
	if sw.err != nil {
		return sw.err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first cell error so rows can be written without
// checking each call.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (s *sheetWriter) header(sheet string, headers []string) {
	vals := make([]any, len(headers))
	for i, h := range headers {
		vals[i] = h
	}
	s.row(sheet, 1, vals...)
}

func (s *sheetWriter) row(sheet string, row int, vals ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(sheet, cell, &vals); err != nil {
		s.err = fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
