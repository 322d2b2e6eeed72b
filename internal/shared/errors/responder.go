package errors

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper converts an application error into a problem, reporting whether it applied.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder renders errors as RFC 7807 documents. Mappers run in order; an
// error none of them claims is logged and answered with an opaque 500.
type Responder struct {
	baseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{baseURI: strings.TrimSuffix(baseURI, "/"), mappers: mappers}
}

// WithLogger returns a copy of r that reports unmapped errors to logger.
func (r *Responder) WithLogger(logger *slog.Logger) *Responder {
	clone := *r
	clone.logger = logger
	return &clone
}

var DefaultResponder = NewResponder("")

// Respond writes problem through DefaultResponder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, r.finalize(c, problem))
}

func (r *Responder) RespondError(c *gin.Context, err error) {
	if problem, ok := r.resolve(err); ok {
		r.Respond(c, problem)
		return
	}
	log := r.logger
	if log == nil {
		log = slog.Default()
	}
	log.LogAttrs(c.Request.Context(), slog.LevelError, "unhandled request error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	r.Respond(c, ErrInternal.WithDetail("an unexpected error occurred"))
}

func (r *Responder) resolve(err error) (ProblemDetail, bool) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem, true
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem, true
	}
	return ProblemDetail{}, false
}

// finalize qualifies relative types and fills instance and message.
func (r *Responder) finalize(c *gin.Context, problem ProblemDetail) ProblemDetail {
	if r.baseURI != "" && strings.HasPrefix(problem.Type, "/") {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if problem.Message == "" {
		problem.Message = problem.Title
		if problem.Detail != "" {
			problem.Message = problem.Detail
		}
	}
	return problem
}
