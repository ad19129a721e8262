package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasks-go/app/apperror"
	"tasks-go/app/middleware"
)

func TestRecover(t *testing.T) {
	tests := []struct {
		name       string
		panicValue any
		wantStatus int
		wantError  string
	}{
		{
			name:       "error with status hint",
			panicValue: apperror.New(http.StatusTeapot, "short and stout"),
			wantStatus: http.StatusTeapot,
			wantError:  "short and stout",
		},
		{
			name:       "plain error",
			panicValue: errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "boom",
		},
		{
			name:       "error without message",
			panicValue: errors.New(""),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
		},
		{
			name:       "non-error value",
			panicValue: 42,
			wantStatus: http.StatusInternalServerError,
			wantError:  "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := middleware.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(tt.panicValue)
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body apperror.Body
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var seenID string
	h := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = middleware.RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-1", seenID)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "handled request", line["message"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/api/tasks", line["path"])
	assert.EqualValues(t, http.StatusAccepted, line["status"])
}
