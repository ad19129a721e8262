package controllers

import (
	"context"
	"net/http"

	"tasks-go/app/apperror"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{DB: db}
}

// GetHealth handles GET /healthz.
func (c *HealthController) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.DB.Ping(r.Context()); err != nil {
		fail(w, r, apperror.Wrap(http.StatusServiceUnavailable, err), apperror.ReadFallback, "Database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
