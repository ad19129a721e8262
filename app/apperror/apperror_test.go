package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tasks-go/app/apperror"
	"tasks-go/app/store"
)

func TestStatusCode(t *testing.T) {
	fk := &store.ConstraintError{Kind: store.ForeignKey, Message: `insert or update on table "tasks" violates foreign key constraint`}

	tests := []struct {
		name     string
		err      error
		fallback int
		want     int
	}{
		{"not found hint", apperror.ErrTaskNotFound, apperror.ReadFallback, http.StatusNotFound},
		{"missing fields hint", apperror.ErrMissingTaskFields, apperror.ReadFallback, http.StatusBadRequest},
		{"wrapped hint", fmt.Errorf("lookup: %w", apperror.ErrTaskNotFound), apperror.WriteFallback, http.StatusNotFound},
		{"constraint violation on write", fk, apperror.WriteFallback, http.StatusBadRequest},
		{"constraint violation on read", fk, apperror.ReadFallback, http.StatusBadRequest},
		{"unhinted read", errors.New("db down"), apperror.ReadFallback, http.StatusInternalServerError},
		{"unhinted write", errors.New("db down"), apperror.WriteFallback, http.StatusBadRequest},
		{"zero hint falls back", &apperror.Error{Message: "x"}, apperror.ReadFallback, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.StatusCode(tt.err, tt.fallback))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Task not found", apperror.Message(apperror.ErrTaskNotFound, "Failed"))
	assert.Equal(t, "db down", apperror.Message(errors.New("db down"), "Failed"))
	assert.Equal(t, "Failed", apperror.Message(errors.New(""), "Failed"))
	assert.Equal(t, "Failed", apperror.Message(nil, "Failed"))
	assert.Equal(t, "cause", apperror.Message(apperror.Wrap(http.StatusConflict, errors.New("cause")), "Failed"))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := apperror.Wrap(http.StatusServiceUnavailable, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.StatusCode(err, apperror.ReadFallback))
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()

	status := apperror.Respond(rec, errors.New("Unexpected DB error"), apperror.ReadFallback, "Failed to fetch tasks")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Unexpected DB error"}`, rec.Body.String())
}

func TestNullFields(t *testing.T) {
	err := apperror.NullFields([]string{"title", "statusId"})

	assert.Equal(t, http.StatusBadRequest, apperror.StatusCode(err, apperror.ReadFallback))
	assert.Equal(t, "Fields cannot be null: title, statusId", err.Error())
}
