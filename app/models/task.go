package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Task is a unit of work with a status and an assigned user.
// Status and User are only set when relations were requested.
type Task struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	StatusID       int64     `json:"statusId"`
	AssignedUserID int64     `json:"assignedUserId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Status *Status `json:"Status,omitempty"`
	User   *User   `json:"User,omitempty"`
}

// NewTask holds the fields needed to insert a task.
type NewTask struct {
	Title          string
	Description    *string
	StatusID       int64
	AssignedUserID int64
}

// TaskPatch is a partial update. Nil fields keep their stored value.
// ClearDescription is set when the body carried "description": null, and
// Nulls names the required fields the body explicitly set to null.
type TaskPatch struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	ClearDescription bool     `json:"-"`
	StatusID         *int64   `json:"statusId"`
	AssignedUserID   *int64   `json:"assignedUserId"`
	Nulls            []string `json:"-"`
}

// UnmarshalJSON decodes the patch and records which fields were sent as null.
func (p *TaskPatch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var decoded struct {
		Title          *string `json:"title"`
		Description    *string `json:"description"`
		StatusID       *ID     `json:"statusId"`
		AssignedUserID *ID     `json:"assignedUserId"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = TaskPatch{
		Title:          decoded.Title,
		Description:    decoded.Description,
		StatusID:       (*int64)(decoded.StatusID),
		AssignedUserID: (*int64)(decoded.AssignedUserID),
	}

	for _, name := range []string{"title", "statusId", "assignedUserId"} {
		if isNull(fields, name) {
			p.Nulls = append(p.Nulls, name)
		}
	}
	p.ClearDescription = isNull(fields, "description")
	return nil
}

func isNull(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	return ok && (len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")))
}

// Apply returns a copy of t with the patch fields replaced.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.ClearDescription {
		t.Description = nil
	}
	if p.StatusID != nil {
		t.StatusID = *p.StatusID
	}
	if p.AssignedUserID != nil {
		t.AssignedUserID = *p.AssignedUserID
	}
	return t
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription &&
		p.StatusID == nil && p.AssignedUserID == nil
}
