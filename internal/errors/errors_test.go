package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorInterface(t *testing.T) {
	err := New(http.StatusBadRequest, "BAD", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "BAD", err.ErrorCode)
}

func TestAPIErrorRender(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, render.Render(w, r, ErrSourceNotFound))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SOURCE_NOT_FOUND")
}

func TestWithMessageDoesNotMutateOriginal(t *testing.T) {
	custom := ErrAnalysisFailed.WithMessage("boom")
	assert.Equal(t, "boom", custom.Message)
	assert.Equal(t, "Analysis could not be completed", ErrAnalysisFailed.Message)
	assert.Equal(t, custom.StatusCode, ErrAnalysisFailed.StatusCode)
}

func TestNewWithDetails(t *testing.T) {
	err := NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "bad", []string{"path"})
	assert.Equal(t, []string{"path"}, err.Details)
}
