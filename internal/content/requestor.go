package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/logger"
)

// Config holds request settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Concurrent issues requests with no dependency between them (review
	// and hints) at the same time.
	Concurrent bool
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Requestor runs request plans against a text-generation provider.
type Requestor struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
	tracer   trace.Tracer
}

func NewRequestor(provider llm.Provider, cfg Config, log *logger.Logger) *Requestor {
	if log == nil {
		log = logger.Nop()
	}
	return &Requestor{
		provider: provider,
		cfg:      cfg,
		log:      log,
		tracer:   otel.Tracer("github.com/abhisek/mathgen/internal/content"),
	}
}

// Run executes every request in plan and returns their outputs. The first
// failure aborts the remaining requests and is returned as a
// *GenerationError.
func (r *Requestor) Run(ctx context.Context, plan *Plan, params Params) (Outputs, error) {
	if params.Grade == "" || params.Topic == "" {
		return nil, fmt.Errorf("content request needs a grade and a topic")
	}

	out := make(Outputs, len(plan.order))
	if !r.cfg.Concurrent {
		for _, k := range plan.order {
			text, err := r.Request(ctx, k, params, plan.DependsOn(k), out)
			if err != nil {
				return nil, err
			}
			out[k] = text
		}
		return out, nil
	}

	var mu sync.Mutex
	for _, level := range plan.levels {
		if len(level) == 1 {
			k := level[0]
			text, err := r.Request(ctx, k, params, plan.DependsOn(k), out)
			if err != nil {
				return nil, err
			}
			out[k] = text
			continue
		}

		// Nodes in a level read only earlier levels, so out is not
		// written while they read it.
		snapshot := make(Outputs, len(out))
		for k, v := range out {
			snapshot[k] = v
		}
		results := make(Outputs, len(level))
		g, gctx := errgroup.WithContext(ctx)
		for _, k := range level {
			g.Go(func() error {
				text, err := r.Request(gctx, k, params, plan.DependsOn(k), snapshot)
				if err != nil {
					return err
				}
				mu.Lock()
				results[k] = text
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for k, v := range results {
			out[k] = v
		}
	}
	return out, nil
}

// Request issues a single content request. deps name the upstream kinds
// whose text is embedded as context.
func (r *Requestor) Request(ctx context.Context, k Kind, params Params, deps []Kind, upstream Outputs) (string, error) {
	ctx, span := r.tracer.Start(ctx, "content."+string(k), trace.WithAttributes(
		attribute.String("mathgen.grade", params.Grade.String()),
		attribute.String("mathgen.topic", params.Topic.String()),
	))
	defer span.End()

	log := r.log.With("kind", string(k), "grade", params.Grade.String(), "topic", params.Topic.String())
	log.Debug("content request started")
	start := time.Now()

	req := llm.Request{
		System:      systemPrompt(k, params),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMessage(k, params, deps, upstream)}},
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}

	resp, err := r.provider.Generate(llm.WithPurpose(ctx, k.Purpose()), req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Debug("content request failed", "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return "", &GenerationError{Kind: k, Err: err}
	}

	text := resp.Text()
	span.SetAttributes(attribute.Int("mathgen.output_chars", len(text)))
	log.Debug("content request finished", "duration_ms", time.Since(start).Milliseconds(), "chars", len(text))
	return text, nil
}
