package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/mathgen/internal/content"
	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/document"
	"github.com/abhisek/mathgen/internal/logger"
)

// Service runs the single-topic content actions. Inputs are validated
// before any request is issued.
type Service struct {
	requestor *content.Requestor
	assembler *document.Assembler
	log       *logger.Logger
	newRunID  func() string
}

// NewService creates a service. assembler may be nil when no request asks
// for a rendered document.
func NewService(requestor *content.Requestor, assembler *document.Assembler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		requestor: requestor,
		assembler: assembler,
		log:       log,
		newRunID:  func() string { return uuid.NewString() },
	}
}

func validateTarget(grade curriculum.GradeLevel, topic curriculum.Topic) error {
	if _, err := curriculum.ParseGrade(grade.String()); err != nil {
		return err
	}
	if _, err := curriculum.ParseTopic(topic.String()); err != nil {
		return err
	}
	return curriculum.ValidateTopic(topic, grade)
}

func validateCounts(numProblems, difficulty int) error {
	if err := curriculum.ValidateDifficulty(difficulty); err != nil {
		return err
	}
	return curriculum.ValidateProblemCount(numProblems)
}

func (s *Service) render(enabled bool) (*document.Assembler, error) {
	if !enabled {
		return nil, nil
	}
	if s.assembler == nil {
		return nil, fmt.Errorf("document output requested but no assembler is configured")
	}
	return s.assembler, nil
}

// GenerateProblems generates a problem set with optional review and hints
// and, when requested, a problems document with an answer key.
func (s *Service) GenerateProblems(ctx context.Context, req ProblemsRequest) (*ProblemsResult, error) {
	if err := validateTarget(req.Grade, req.Topic); err != nil {
		return nil, err
	}
	if err := validateCounts(req.NumProblems, req.Difficulty); err != nil {
		return nil, err
	}
	asm, err := s.render(req.Render)
	if err != nil {
		return nil, err
	}

	runID := s.newRunID()
	log := s.log.With("run_id", runID, "action", "generate")
	log.Info("generating problems", "grade", req.Grade.String(), "topic", req.Topic.String(), "num_problems", req.NumProblems)

	plan := content.ProblemSetPlan(req.IncludeReview, req.IncludeHints)
	out, err := s.requestor.Run(ctx, plan, content.Params{
		Grade:       req.Grade,
		Topic:       req.Topic,
		NumProblems: req.NumProblems,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	res := &ProblemsResult{
		RunID:       runID,
		Grade:       req.Grade,
		Topic:       req.Topic,
		NumProblems: req.NumProblems,
		Difficulty:  req.Difficulty,
		Problems:    out.Get(content.KindProblems),
		Review:      out.Get(content.KindReview),
		Hints:       out.Get(content.KindHints),
	}
	for _, k := range plan.Order() {
		res.TasksOutput = append(res.TasksOutput, out.Get(k))
	}
	res.Result = res.TasksOutput[len(res.TasksOutput)-1]

	if asm != nil {
		path, err := asm.Problems(document.ProblemsInput{
			Grade:          req.Grade,
			Topic:          req.Topic,
			Frequency:      req.Frequency,
			Problems:       res.Problems,
			Hints:          res.Hints,
			IncludeHints:   req.IncludeHints,
			IncludeAnswers: true,
		})
		if err != nil {
			return nil, err
		}
		res.PDFPath = path
		log.Info("wrote problems document", "path", path)
	}
	return res, nil
}

// ExplainConcept generates a concept explanation and, when requested, a
// concept document.
func (s *Service) ExplainConcept(ctx context.Context, req ExplainRequest) (*ExplainResult, error) {
	if err := validateTarget(req.Grade, req.Topic); err != nil {
		return nil, err
	}
	asm, err := s.render(req.Render)
	if err != nil {
		return nil, err
	}

	runID := s.newRunID()
	log := s.log.With("run_id", runID, "action", "explain")
	log.Info("explaining concept", "grade", req.Grade.String(), "topic", req.Topic.String())

	out, err := s.requestor.Run(ctx, content.ConceptPlan(), content.Params{Grade: req.Grade, Topic: req.Topic})
	if err != nil {
		return nil, err
	}

	res := &ExplainResult{
		RunID:       runID,
		Grade:       req.Grade,
		Topic:       req.Topic,
		Description: curriculum.DescriptionFor(req.Topic, req.Grade),
		Explanation: out.Get(content.KindExplanation),
	}
	if asm != nil {
		path, err := asm.Concept(req.Grade, req.Topic, req.Frequency, res.Explanation)
		if err != nil {
			return nil, err
		}
		res.PDFPath = path
		log.Info("wrote concept document", "path", path)
	}
	return res, nil
}

// GenerateWorksheet runs the full request chain (explanation, problems,
// review, hints, worksheet) and, when requested, a worksheet document.
func (s *Service) GenerateWorksheet(ctx context.Context, req WorksheetRequest) (*WorksheetResult, error) {
	if err := validateTarget(req.Grade, req.Topic); err != nil {
		return nil, err
	}
	if err := validateCounts(req.NumProblems, req.Difficulty); err != nil {
		return nil, err
	}
	asm, err := s.render(req.Render)
	if err != nil {
		return nil, err
	}

	runID := s.newRunID()
	log := s.log.With("run_id", runID, "action", "worksheet")
	log.Info("compiling worksheet", "grade", req.Grade.String(), "topic", req.Topic.String(), "num_problems", req.NumProblems)

	out, err := s.requestor.Run(ctx, content.WorksheetPlan(), content.Params{
		Grade:       req.Grade,
		Topic:       req.Topic,
		NumProblems: req.NumProblems,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	res := &WorksheetResult{
		RunID:       runID,
		Grade:       req.Grade,
		Topic:       req.Topic,
		NumProblems: req.NumProblems,
		Difficulty:  req.Difficulty,
		Worksheet:   out.Get(content.KindWorksheet),
	}
	if asm != nil {
		path, err := asm.Worksheet(req.Grade, req.Topic, req.Frequency, res.Worksheet)
		if err != nil {
			return nil, err
		}
		res.PDFPath = path
		log.Info("wrote worksheet document", "path", path)
	}
	return res, nil
}

// SweepGrade generates a problem set for every topic of a grade at the
// grade's baseline difficulty. It stops at the first failure and returns
// the results produced so far.
func (s *Service) SweepGrade(ctx context.Context, grade curriculum.GradeLevel, perTopic int) ([]*ProblemsResult, error) {
	if _, err := curriculum.ParseGrade(grade.String()); err != nil {
		return nil, err
	}
	if err := curriculum.ValidateProblemCount(perTopic); err != nil {
		return nil, err
	}

	var results []*ProblemsResult
	for _, topic := range curriculum.TopicsForGrade(grade) {
		req := NewProblemsRequest(grade, topic)
		req.NumProblems = perTopic
		req.Difficulty = curriculum.DifficultyFor(grade)
		res, err := s.GenerateProblems(ctx, req)
		if err != nil {
			return results, fmt.Errorf("sweep %s/%s: %w", grade, topic, err)
		}
		results = append(results, res)
	}
	return results, nil
}
