package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmya/grifter-or-pro/internal/ingestion"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: id - must be a UUID", (&ErrValidation{Field: "id", Message: "must be a UUID"}).Error())
	assert.Equal(t, "report not found: abc", (&ErrNotFound{Resource: "report", ID: "abc"}).Error())
	assert.Equal(t, "report archive is not available", (&ErrUnavailable{Feature: "report archive"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "f", Message: "m"}, http.StatusBadRequest},
		{"not found", &ErrNotFound{Resource: "report", ID: "x"}, http.StatusNotFound},
		{"unavailable", &ErrUnavailable{Feature: "x"}, http.StatusServiceUnavailable},
		{"unsupported format", fmt.Errorf("%w: \"cv.txt\"", ingestion.ErrUnsupportedFormat), http.StatusUnsupportedMediaType},
		{"empty resume", ingestion.ErrEmptyResume, http.StatusUnprocessableEntity},
		{"wrapped validation", fmt.Errorf("outer: %w", &ErrValidation{}), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
