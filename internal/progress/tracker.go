package progress

import (
	"context"
	"time"

	"github.com/abhisek/mathgen/internal/curriculum"
)

const (
	// DefaultDaysPerTopic is how many school days a week plan spends on
	// each topic.
	DefaultDaysPerTopic = 2

	weekPlanDays    = 5
	recentHistory   = 5
	completedMarker = "All completed"
)

// Tracker loads and mutates per-grade records through a RecordStore.
// Mutating methods update the caller's record only after the new state
// has been saved. There is no locking: one writer per grade is assumed.
type Tracker struct {
	store RecordStore
	now   func() time.Time
}

func NewTracker(store RecordStore) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Load returns the stored record for grade, or a fresh one when none
// exists. A record that cannot be read or decoded is a *StorageError.
func (t *Tracker) Load(ctx context.Context, grade curriculum.GradeLevel) (*Progress, error) {
	data, ok, err := t.store.Get(ctx, grade.String())
	if err != nil {
		return nil, &StorageError{Grade: grade, Op: "load", Err: err}
	}
	if !ok {
		return New(grade), nil
	}
	p, err := Decode(grade, data)
	if err != nil {
		return nil, &StorageError{Grade: grade, Op: "load", Err: err}
	}
	return p, nil
}

func (t *Tracker) save(ctx context.Context, p *Progress) error {
	data, err := Encode(p)
	if err != nil {
		return &StorageError{Grade: p.Grade, Op: "save", Err: err}
	}
	if err := t.store.Put(ctx, p.Grade.String(), data); err != nil {
		return &StorageError{Grade: p.Grade, Op: "save", Err: err}
	}
	return nil
}

// commit saves next and, on success, copies it into p.
func (t *Tracker) commit(ctx context.Context, p, next *Progress) error {
	if err := t.save(ctx, next); err != nil {
		return err
	}
	*p = *next
	return nil
}

// Advance moves to the next topic. At the last topic (or once completed)
// it returns false and leaves the record untouched.
func (t *Tracker) Advance(ctx context.Context, p *Progress) (bool, error) {
	if p.CurrentTopicIndex >= len(p.TopicsOrder)-1 {
		return false, nil
	}
	next := p.clone()
	next.CurrentTopicIndex++
	if err := t.commit(ctx, p, next); err != nil {
		return false, err
	}
	return true, nil
}

// Reset rewinds to the first topic and clears the history.
func (t *Tracker) Reset(ctx context.Context, p *Progress) error {
	next := p.clone()
	next.CurrentTopicIndex = 0
	next.DaysCompleted = 0
	next.History = []DayRecord{}
	return t.commit(ctx, p, next)
}

// DayInput describes a finished generation cycle.
type DayInput struct {
	Topic      curriculum.Topic
	TopicIndex int
	// Date defaults to today when zero.
	Date             time.Time
	ConceptGuidePath string
	WorksheetPath    string
}

// RecordDay appends a day record and increments DaysCompleted. It is not
// idempotent: recording the same cycle twice appends two entries.
func (t *Tracker) RecordDay(ctx context.Context, p *Progress, in DayInput) (DayRecord, error) {
	date := in.Date
	if date.IsZero() {
		date = t.now()
	}

	next := p.clone()
	next.DaysCompleted++
	rec := DayRecord{
		Day:              next.DaysCompleted,
		Date:             date.Format(time.DateOnly),
		Topic:            in.Topic,
		TopicIndex:       in.TopicIndex,
		ConceptGuidePath: optionalPath(in.ConceptGuidePath),
		WorksheetPath:    optionalPath(in.WorksheetPath),
	}
	next.History = append(next.History, rec)

	if err := t.commit(ctx, p, next); err != nil {
		return DayRecord{}, err
	}
	return rec, nil
}

func optionalPath(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Summary is a read-only view of a record.
type Summary struct {
	Grade              curriculum.GradeLevel `json:"grade"`
	TotalTopics        int                   `json:"total_topics"`
	CurrentTopicIndex  int                   `json:"current_topic_index"`
	CurrentTopic       string                `json:"current_topic"`
	DaysCompleted      int                   `json:"days_completed"`
	TopicsRemaining    int                   `json:"topics_remaining"`
	ProgressPercentage float64               `json:"progress_percentage"`
	RecentHistory      []DayRecord           `json:"recent_history"`
}

// Summarize reports the record's position. With no topics the percentage
// is 100.
func Summarize(p *Progress) Summary {
	total := len(p.TopicsOrder)
	current := completedMarker
	if topic, ok := p.CurrentTopic(); ok {
		current = topic.String()
	}

	pct := 100.0
	if total > 0 {
		pct = float64(p.CurrentTopicIndex) / float64(total) * 100
	}

	recent := p.History
	if len(recent) > recentHistory {
		recent = recent[len(recent)-recentHistory:]
	}

	return Summary{
		Grade:              p.Grade,
		TotalTopics:        total,
		CurrentTopicIndex:  p.CurrentTopicIndex,
		CurrentTopic:       current,
		DaysCompleted:      p.DaysCompleted,
		TopicsRemaining:    total - p.CurrentTopicIndex,
		ProgressPercentage: pct,
		RecentHistory:      append([]DayRecord{}, recent...),
	}
}

// PlanEntry is one simulated school day.
type PlanEntry struct {
	Day               int              `json:"day"`
	Topic             curriculum.Topic `json:"topic"`
	TopicPosition     int              `json:"topic_index"`
	DayInTopic        int              `json:"day_in_topic"`
	TotalDaysForTopic int              `json:"total_days_for_topic"`
	Focus             string           `json:"focus"`
}

const (
	FocusIntroduction = "Concept Introduction"
	FocusPractice     = "Practice & Reinforcement"
)

// WeekPlan simulates up to five school days from the current topic,
// spending daysPerTopic days on each. It stops early at the end of the
// sequence and never mutates p. daysPerTopic < 1 is treated as 1.
func WeekPlan(p *Progress, daysPerTopic int) []PlanEntry {
	if daysPerTopic < 1 {
		daysPerTopic = 1
	}

	var plan []PlanEntry
	for day := 1; day <= weekPlanDays; day++ {
		idx := p.CurrentTopicIndex + (day-1)/daysPerTopic
		if idx >= len(p.TopicsOrder) {
			break
		}
		dayInTopic := (day-1)%daysPerTopic + 1
		focus := FocusPractice
		if dayInTopic == 1 {
			focus = FocusIntroduction
		}
		plan = append(plan, PlanEntry{
			Day:               day,
			Topic:             p.TopicsOrder[idx],
			TopicPosition:     idx + 1,
			DayInTopic:        dayInTopic,
			TotalDaysForTopic: daysPerTopic,
			Focus:             focus,
		})
	}
	return plan
}
