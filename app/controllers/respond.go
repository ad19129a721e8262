package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	"tasks-go/app/apperror"
)

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// fail logs err and writes it using the classifier.
func fail(w http.ResponseWriter, r *http.Request, err error, fallback int, defaultMessage string) {
	statusCode := apperror.Respond(w, err, fallback, defaultMessage)

	logger := hlog.FromRequest(r)
	if statusCode >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", statusCode).Msg(defaultMessage)
		return
	}
	logger.Warn().Err(err).Int("status", statusCode).Msg(defaultMessage)
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &apperror.Error{
		StatusCode: apperror.ErrInvalidPayload.StatusCode,
		Message:    apperror.ErrInvalidPayload.Message,
		Err:        err,
	}
}

// pathID returns the positive integer id in the route, if any.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
