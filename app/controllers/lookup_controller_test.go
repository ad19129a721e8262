package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasks-go/app/models"
	"tasks-go/app/routes"
	"tasks-go/app/store"
)

func TestGetStatuses(t *testing.T) {
	h, _, _ := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/statuses", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	statuses := decode[[]models.Status](t, rec)
	require.Len(t, statuses, 3)
	assert.Equal(t, "Todo", statuses[0].Name)
	assert.Equal(t, "In Progress", statuses[1].Name)
	assert.Equal(t, "Done", statuses[2].Name)
}

func TestGetUsers(t *testing.T) {
	h, _, fx := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]models.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, fx.User.ID, users[0].ID)
	assert.Equal(t, "testuser", users[0].Username)
}

type brokenStore struct {
	store.Store
}

func (brokenStore) ListStatuses(context.Context) ([]models.Status, error) {
	return nil, errors.New("connection reset")
}

func (brokenStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestLookupAndHealthFailures(t *testing.T) {
	h := routes.NewHandler(brokenStore{}, zerolog.Nop())

	rec := do(t, h, http.MethodGet, "/api/statuses", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"connection reset"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"connection refused"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
