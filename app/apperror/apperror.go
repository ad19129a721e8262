// Package apperror classifies handler failures into HTTP status codes and
// writes them as {"error": message} bodies.
package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tasks-go/app/store"
)

// Error is a failure with a status code hint attached where it was raised.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

// New creates an Error with a fixed message.
func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// Wrap attaches a status code hint to err, keeping its message.
func Wrap(statusCode int, err error) *Error {
	return &Error{StatusCode: statusCode, Err: err}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fixed failures raised by the handlers.
var (
	ErrTaskNotFound      = New(http.StatusNotFound, "Task not found")
	ErrMissingTaskFields = New(http.StatusBadRequest, "Missing required fields: title, statusId, or assignedUserId")
	ErrInvalidPayload    = New(http.StatusBadRequest, "Invalid request payload")
)

// NullFields rejects required fields that a body set to null.
func NullFields(fields []string) *Error {
	return New(http.StatusBadRequest, "Fields cannot be null: "+strings.Join(fields, ", "))
}

// Fallback codes for failures that carry no hint. Unhinted write failures
// are presumed to be caused by the client, read failures by the server.
const (
	// ReadFallback applies to list, get and delete.
	ReadFallback = http.StatusInternalServerError
	// WriteFallback applies to create and update.
	WriteFallback = http.StatusBadRequest
)

// DefaultMessage is used when a failure carries no text of its own.
const DefaultMessage = "Internal Server Error"

// Body is the JSON shape of every error response.
type Body struct {
	Error string `json:"error"`
}

// StatusCode returns the hint carried by err, or fallback when it has none.
// Constraint violations reported by the store are client errors.
func StatusCode(err error, fallback int) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}

	var constraintErr *store.ConstraintError
	if errors.As(err, &constraintErr) {
		return http.StatusBadRequest
	}

	return fallback
}

// Message returns the text of err, or defaultMessage when err has none.
func Message(err error, defaultMessage string) string {
	if err == nil || err.Error() == "" {
		return defaultMessage
	}
	return err.Error()
}

// Classify returns the status code and message for err.
func Classify(err error, fallback int, defaultMessage string) (int, string) {
	return StatusCode(err, fallback), Message(err, defaultMessage)
}

// Write sends {"error": message} with the given status code.
func Write(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Body{Error: message})
}

// Respond classifies err, writes it and returns the status code used.
func Respond(w http.ResponseWriter, err error, fallback int, defaultMessage string) int {
	statusCode, message := Classify(err, fallback, defaultMessage)
	Write(w, statusCode, message)
	return statusCode
}
