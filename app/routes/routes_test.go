package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"tasks-go/app/middleware"
	"tasks-go/app/routes"
	"tasks-go/app/testutil"
)

func TestUnknownRoutes(t *testing.T) {
	h := routes.NewHandler(testutil.NewSQLiteStore(t), zerolog.Nop())

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, `{"error":"Not Found"}`},
		{"unknown api path", http.MethodGet, "/api/nope", http.StatusNotFound, `{"error":"Not Found"}`},
		{"wrong method", http.MethodPatch, "/api/tasks", http.StatusMethodNotAllowed, `{"error":"Method Not Allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := routes.NewHandler(testutil.NewSQLiteStore(t), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}
