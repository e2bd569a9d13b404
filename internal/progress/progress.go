// Package progress tracks each grade's position in its curriculum
// sequence and the history of generated days.
package progress

import (
	"slices"

	"github.com/abhisek/mathgen/internal/curriculum"
)

// Progress is the persisted per-grade record.
//
// 0 <= CurrentTopicIndex <= len(TopicsOrder). When the index equals the
// length the curriculum is completed.
type Progress struct {
	Grade             curriculum.GradeLevel `json:"grade"`
	CurrentTopicIndex int                   `json:"current_topic_index"`
	DaysCompleted     int                   `json:"days_completed"`
	History           []DayRecord           `json:"history"`
	TopicsOrder       []curriculum.Topic    `json:"topics_order"`
}

// DayRecord is one completed generation cycle. Records are never modified
// after they are appended.
type DayRecord struct {
	Day              int              `json:"day"`
	Date             string           `json:"date"`
	Topic            curriculum.Topic `json:"topic"`
	TopicIndex       int              `json:"topic_index"`
	ConceptGuidePath *string          `json:"concept_guide_path"`
	WorksheetPath    *string          `json:"worksheet_path"`
}

// New returns the initial record for a grade with a snapshot of the
// catalog sequence.
func New(grade curriculum.GradeLevel) *Progress {
	return &Progress{
		Grade:       grade,
		History:     []DayRecord{},
		TopicsOrder: curriculum.TopicsForGrade(grade),
	}
}

// CurrentTopic returns the active topic, or false once every topic is done.
func (p *Progress) CurrentTopic() (curriculum.Topic, bool) {
	if p.CurrentTopicIndex < 0 || p.CurrentTopicIndex >= len(p.TopicsOrder) {
		return "", false
	}
	return p.TopicsOrder[p.CurrentTopicIndex], true
}

// Completed reports whether the grade has moved past its last topic.
func (p *Progress) Completed() bool {
	_, ok := p.CurrentTopic()
	return !ok
}

func (p *Progress) TotalTopics() int {
	return len(p.TopicsOrder)
}

func (p *Progress) clone() *Progress {
	c := *p
	c.History = slices.Clone(p.History)
	if c.History == nil {
		c.History = []DayRecord{}
	}
	c.TopicsOrder = slices.Clone(p.TopicsOrder)
	return &c
}
