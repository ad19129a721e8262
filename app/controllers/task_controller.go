package controllers

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"tasks-go/app/apperror"
	"tasks-go/app/models"
	"tasks-go/app/store"
)

// TaskController handles HTTP requests for tasks.
type TaskController struct {
	Store store.TaskStore
}

// NewTaskController creates a new TaskController.
func NewTaskController(s store.TaskStore) *TaskController {
	return &TaskController{Store: s}
}

type createTaskRequest struct {
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	StatusID       models.ID `json:"statusId"`
	AssignedUserID models.ID `json:"assignedUserId"`
}

func (req createTaskRequest) valid() bool {
	return req.Title != "" && req.StatusID != 0 && req.AssignedUserID != 0
}

// GetTasks handles GET /tasks.
func (c *TaskController) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Store.ListTasks(r.Context(), true)
	if err != nil {
		fail(w, r, err, apperror.ReadFallback, "Failed to fetch tasks")
		return
	}

	hlog.FromRequest(r).Debug().Int("count", len(tasks)).Msg("fetched tasks")
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks.
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	const failMessage = "Failed to create task"

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err, apperror.WriteFallback, failMessage)
		return
	}
	if !req.valid() {
		fail(w, r, apperror.ErrMissingTaskFields, apperror.WriteFallback, failMessage)
		return
	}

	task, err := c.Store.CreateTask(r.Context(), models.NewTask{
		Title:          req.Title,
		Description:    req.Description,
		StatusID:       int64(req.StatusID),
		AssignedUserID: int64(req.AssignedUserID),
	})
	if err != nil {
		fail(w, r, err, apperror.WriteFallback, failMessage)
		return
	}

	hlog.FromRequest(r).Info().Int64("task_id", task.ID).Msg("created task")
	writeJSON(w, http.StatusCreated, task)
}

// GetTaskByID handles GET /tasks/{taskID}.
func (c *TaskController) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	const failMessage = "Failed to fetch task"

	id, ok := pathID(r, "taskID")
	if !ok {
		fail(w, r, apperror.ErrTaskNotFound, apperror.ReadFallback, failMessage)
		return
	}

	task, err := c.Store.FindTask(r.Context(), id, true)
	if err != nil {
		fail(w, r, err, apperror.ReadFallback, failMessage)
		return
	}
	if task == nil {
		fail(w, r, apperror.ErrTaskNotFound, apperror.ReadFallback, failMessage)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{taskID}. Only the fields present in the
// body are changed. A null description clears it; a null required field
// is rejected.
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	const failMessage = "Failed to update task"

	id, ok := pathID(r, "taskID")
	if !ok {
		fail(w, r, apperror.ErrTaskNotFound, apperror.WriteFallback, failMessage)
		return
	}

	current, err := c.Store.FindTask(r.Context(), id, false)
	if err != nil {
		fail(w, r, err, apperror.WriteFallback, failMessage)
		return
	}
	if current == nil {
		fail(w, r, apperror.ErrTaskNotFound, apperror.WriteFallback, failMessage)
		return
	}

	var patch models.TaskPatch
	if err := decodeJSON(r, &patch); err != nil {
		fail(w, r, err, apperror.WriteFallback, failMessage)
		return
	}
	if len(patch.Nulls) > 0 {
		fail(w, r, apperror.NullFields(patch.Nulls), apperror.WriteFallback, failMessage)
		return
	}
	if patch.Empty() {
		writeJSON(w, http.StatusOK, current)
		return
	}

	updated, err := c.Store.UpdateTask(r.Context(), id, patch)
	if err != nil {
		fail(w, r, err, apperror.WriteFallback, failMessage)
		return
	}
	// Deleted between the lookup and the write.
	if updated == nil {
		fail(w, r, apperror.ErrTaskNotFound, apperror.WriteFallback, failMessage)
		return
	}

	hlog.FromRequest(r).Info().Int64("task_id", id).Msg("updated task")
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	const failMessage = "Failed to delete task"

	id, ok := pathID(r, "taskID")
	if !ok {
		fail(w, r, apperror.ErrTaskNotFound, apperror.ReadFallback, failMessage)
		return
	}

	task, err := c.Store.FindTask(r.Context(), id, false)
	if err != nil {
		fail(w, r, err, apperror.ReadFallback, failMessage)
		return
	}
	if task == nil {
		fail(w, r, apperror.ErrTaskNotFound, apperror.ReadFallback, failMessage)
		return
	}

	if err := c.Store.DeleteTask(r.Context(), id); err != nil {
		fail(w, r, err, apperror.ReadFallback, failMessage)
		return
	}

	hlog.FromRequest(r).Info().Int64("task_id", id).Msg("deleted task")
	w.WriteHeader(http.StatusNoContent)
}
