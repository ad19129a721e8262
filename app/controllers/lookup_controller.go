package controllers

import (
	"net/http"

	"tasks-go/app/apperror"
	"tasks-go/app/store"
)

// LookupController serves the statuses and users tasks refer to.
type LookupController struct {
	Store store.LookupStore
}

func NewLookupController(s store.LookupStore) *LookupController {
	return &LookupController{Store: s}
}

// GetStatuses handles GET /statuses.
func (c *LookupController) GetStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := c.Store.ListStatuses(r.Context())
	if err != nil {
		fail(w, r, err, apperror.ReadFallback, "Failed to fetch statuses")
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

// GetUsers handles GET /users.
func (c *LookupController) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Store.ListUsers(r.Context())
	if err != nil {
		fail(w, r, err, apperror.ReadFallback, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}
