package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOutOfPaper = stderrors.New("out of paper")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/things/:id", handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/42", nil))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespond_FillsInstanceAndMessage(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		Respond(c, ErrForbidden)
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "/api/things/42", problem.Instance)
	assert.Equal(t, "Forbidden", problem.Message)
}

func TestResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewResponder("https://marketplace.example",
		func(err error) (ProblemDetail, bool) {
			if stderrors.Is(err, errOutOfPaper) {
				return NewInsufficientStockProblem(err.Error(), "p-1", 2, 5), true
			}
			return ProblemDetail{}, false
		},
		func(error) (ProblemDetail, bool) { return ErrConflict, true },
	)

	rec, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("checkout: %w", errOutOfPaper))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "https://marketplace.example"+TypeInsufficientStock, problem.Type)
	assert.Equal(t, "checkout: out of paper", problem.Message)
	assert.EqualValues(t, 2, problem.Extensions["available"])
	assert.EqualValues(t, 5, problem.Extensions["requested"])
}

func TestResponder_MasksUnmappedErrors(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		NewResponder("").RespondError(c, stderrors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Equal(t, "an unexpected error occurred", problem.Detail)
}

func TestResponder_PassesProblemErrorsThrough(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		DefaultResponder.RespondError(c, NewNotFoundProblem("product", "p-9"))
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product", problem.Extensions["resourceType"])
}

func TestResponder_LogsUnmappedErrors(t *testing.T) {
	var buf bytes.Buffer
	responder := NewResponder("").WithLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	serve(t, func(c *gin.Context) {
		responder.RespondError(c, stderrors.New("disk full"))
	})
	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), "unhandled request error")
}

func TestWithExtensionDoesNotShareMaps(t *testing.T) {
	base := ErrBadRequest.WithExtension("a", 1)
	first := base.WithExtension("b", 2)
	second := base.WithExtension("c", 3)

	assert.NotContains(t, first.Extensions, "c")
	assert.NotContains(t, second.Extensions, "b")
	assert.Len(t, base.Extensions, 1)
}

func TestNewValidationProblem(t *testing.T) {
	problem := NewValidationProblem(map[string]string{"email": "must be a valid email"})
	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, "1 field(s) failed validation", problem.Detail)
	assert.Equal(t, map[string]string{"email": "must be a valid email"}, problem.Extensions["fields"])
}
