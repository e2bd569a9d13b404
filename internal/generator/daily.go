package generator

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/logger"
	"github.com/abhisek/mathgen/internal/progress"
)

// Daily runs the daily curriculum cycle: generate the current topic's
// documents, then record the day.
type Daily struct {
	service *Service
	tracker *progress.Tracker
	log     *logger.Logger
	now     func() time.Time
}

func NewDaily(service *Service, tracker *progress.Tracker, log *logger.Logger) *Daily {
	if log == nil {
		log = logger.Nop()
	}
	return &Daily{service: service, tracker: tracker, log: log, now: time.Now}
}

// Tracker returns the progression tracker the cycle records to.
func (d *Daily) Tracker() *progress.Tracker { return d.tracker }

// Run generates the day's content for grade. When every topic is done it
// returns a completed result without issuing requests. The day is
// recorded only after every requested document was produced; documents
// written before a failure stay on disk.
func (d *Daily) Run(ctx context.Context, grade curriculum.GradeLevel, opts DailyOptions) (*DailyResult, error) {
	if _, err := curriculum.ParseGrade(grade.String()); err != nil {
		return nil, err
	}
	if opts.Worksheet {
		if err := curriculum.ValidateProblemCount(opts.NumProblems); err != nil {
			return nil, err
		}
	}

	p, err := d.tracker.Load(ctx, grade)
	if err != nil {
		return nil, err
	}

	topic, ok := p.CurrentTopic()
	if !ok {
		return &DailyResult{
			Status:    StatusCompleted,
			Message:   fmt.Sprintf("All topics for %s have been completed!", grade),
			TotalDays: p.DaysCompleted,
		}, nil
	}

	now := d.now()
	res := &DailyResult{
		Status:        StatusSuccess,
		RunID:         d.service.newRunID(),
		Grade:         grade,
		Topic:         topic,
		Day:           p.DaysCompleted + 1,
		TopicSequence: p.CurrentTopicIndex + 1,
		TotalTopics:   p.TotalTopics(),
		Date:          now.Format(time.DateOnly),
	}
	log := d.log.With("run_id", res.RunID, "grade", grade.String(), "topic", topic.String(), "day", res.Day)
	log.Info("daily cycle started")

	day := progress.DayInput{Topic: topic, TopicIndex: p.CurrentTopicIndex, Date: now}

	if opts.ConceptGuide {
		req := NewExplainRequest(grade, topic)
		req.Frequency = FrequencyDaily
		concept, err := d.service.ExplainConcept(ctx, req)
		if err != nil {
			return nil, err
		}
		res.ConceptGuide = &ConceptGuide{PDFPath: concept.PDFPath, Description: concept.Description}
		day.ConceptGuidePath = concept.PDFPath
	}

	if opts.Worksheet {
		req := NewWorksheetRequest(grade, topic)
		req.NumProblems = opts.NumProblems
		req.Difficulty = curriculum.DifficultyFor(grade)
		req.Frequency = FrequencyDaily
		ws, err := d.service.GenerateWorksheet(ctx, req)
		if err != nil {
			return nil, err
		}
		res.Worksheet = &DailyWorksheet{PDFPath: ws.PDFPath, NumProblems: opts.NumProblems}
		day.WorksheetPath = ws.PDFPath
	}

	if _, err := d.tracker.RecordDay(ctx, p, day); err != nil {
		return nil, err
	}
	log.Info("daily cycle recorded", "days_completed", p.DaysCompleted)
	return res, nil
}

// RunAll runs the daily cycle for each distinct grade. Grades run one
// after another unless parallel is set, in which case each grade runs in
// its own goroutine. The first failure cancels the rest; results for the
// grades that finished are returned with the error.
func (d *Daily) RunAll(ctx context.Context, grades []curriculum.GradeLevel, opts DailyOptions, parallel bool) (map[curriculum.GradeLevel]*DailyResult, error) {
	if len(grades) == 0 {
		grades = curriculum.AllGrades()
	}
	grades = distinct(grades)
	results := make(map[curriculum.GradeLevel]*DailyResult, len(grades))

	if !parallel {
		for _, g := range grades {
			res, err := d.Run(ctx, g, opts)
			if err != nil {
				return results, fmt.Errorf("%s: %w", g, err)
			}
			results[g] = res
		}
		return results, nil
	}

	var mu sync.Mutex
	eg, gctx := errgroup.WithContext(ctx)
	for _, g := range grades {
		eg.Go(func() error {
			res, err := d.Run(gctx, g, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", g, err)
			}
			mu.Lock()
			results[g] = res
			mu.Unlock()
			return nil
		})
	}
	err := eg.Wait()
	return results, err
}

func distinct(grades []curriculum.GradeLevel) []curriculum.GradeLevel {
	out := make([]curriculum.GradeLevel, 0, len(grades))
	for _, g := range grades {
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return out
}
