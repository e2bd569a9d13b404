// Package api exposes the content actions over HTTP. Handle is the
// protocol-neutral core; NewRouter adapts it to gin.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/abhisek/mathgen/internal/curriculum"
	"github.com/abhisek/mathgen/internal/generator"
	"github.com/abhisek/mathgen/internal/logger"
)

const (
	ServiceName    = "math-problems-generator"
	ServiceVersion = "0.1.0"

	internalErrorMessage = "Internal server error"
)

// CORSHeaders are set on every response.
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// Generator runs content actions.
type Generator interface {
	GenerateProblems(ctx context.Context, req generator.ProblemsRequest) (*generator.ProblemsResult, error)
	ExplainConcept(ctx context.Context, req generator.ExplainRequest) (*generator.ExplainResult, error)
	GenerateWorksheet(ctx context.Context, req generator.WorksheetRequest) (*generator.WorksheetResult, error)
}

// Request is a transport-independent generate call.
type Request struct {
	Body  []byte
	Query map[string]string
}

// Response carries a status code and a JSON-encodable body.
type Response struct {
	StatusCode int
	Body       any
}

// ErrorBody is the payload of every non-200 response.
type ErrorBody struct {
	Error string `json:"error"`
}

// HealthBody is the payload of the health check.
type HealthBody struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Handler validates generate calls and dispatches them to a Generator.
type Handler struct {
	gen    Generator
	log    *logger.Logger
	render bool
}

// NewHandler creates a handler. When render is set, actions also write
// their documents and report the path.
func NewHandler(gen Generator, render bool, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{gen: gen, log: log, render: render}
}

// Handle validates the call, runs the action and maps the outcome to a
// status: 200 with the result, 400 with the first validation failure or
// 500 with a generic message.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	params, err := ParseParams(req.Body, req.Query)
	if err != nil {
		return h.errorResponse(err)
	}

	result, err := h.run(ctx, params)
	if err != nil {
		return h.errorResponse(err)
	}
	return Response{StatusCode: http.StatusOK, Body: result}
}

func (h *Handler) run(ctx context.Context, p Params) (any, error) {
	switch p.Action {
	case ActionExplain:
		req := generator.NewExplainRequest(p.Grade, p.Topic)
		req.Render = h.render
		return h.gen.ExplainConcept(ctx, req)
	case ActionWorksheet:
		req := generator.NewWorksheetRequest(p.Grade, p.Topic)
		req.NumProblems = p.NumProblems
		req.Difficulty = p.Difficulty
		req.Render = h.render
		return h.gen.GenerateWorksheet(ctx, req)
	default:
		req := generator.NewProblemsRequest(p.Grade, p.Topic)
		req.NumProblems = p.NumProblems
		req.Difficulty = p.Difficulty
		req.Render = h.render
		return h.gen.GenerateProblems(ctx, req)
	}
}

func (h *Handler) errorResponse(err error) Response {
	var (
		verr     *curriculum.ValidationError
		topicErr *curriculum.TopicNotAppropriateError
	)
	if errors.As(err, &verr) || errors.As(err, &topicErr) {
		return Response{StatusCode: http.StatusBadRequest, Body: ErrorBody{Error: err.Error()}}
	}
	h.log.Error("generate request failed", "error", err.Error())
	return Response{StatusCode: http.StatusInternalServerError, Body: ErrorBody{Error: internalErrorMessage}}
}

// Health reports a fixed healthy payload.
func Health() Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       HealthBody{Status: "healthy", Service: ServiceName, Version: ServiceVersion},
	}
}
