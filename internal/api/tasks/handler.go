// Package tasks provides task API endpoints.
package tasks

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/middleware"
	"github.com/good-yellow-bee/taskboard/internal/api/respond"
	"github.com/good-yellow-bee/taskboard/internal/metrics"
	"github.com/good-yellow-bee/taskboard/internal/models"
	"github.com/good-yellow-bee/taskboard/internal/tracker"
)

// Service is the subset of the tracker used by task endpoints.
type Service interface {
	CreateTask(ctx context.Context, in tracker.CreateTaskInput) (*models.Task, error)
	GetTaskDetail(ctx context.Context, taskID int64) (*models.TaskDetail, error)
	GetTaskOwnerDetail(ctx context.Context, taskID int64) (*models.TaskOwnerDetail, error)
	GetTaskProjectDetail(ctx context.Context, taskID int64) (*models.TaskProjectDetail, error)
	UpdateTask(ctx context.Context, taskID int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
}

// Handler handles task endpoints.
type Handler struct {
	svc    Service
	logger *zap.Logger
}

// NewHandler creates a new task handler.
func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the request body for creating a task. OwnerID defaults
// to the caller.
type CreateRequest struct {
	ProjectID   int64  `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id"`
	StatusID    int64  `json:"status_id"`
}

// Create creates a new task.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ProjectID == 0 || req.StatusID == 0 || req.Name == "" {
		respond.JSONError(w, respond.BadRequest("project_id, name and status_id required"))
		return
	}
	if req.OwnerID == 0 {
		req.OwnerID = middleware.GetUserID(r.Context())
	}

	task, err := h.svc.CreateTask(r.Context(), tracker.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     req.OwnerID,
		StatusID:    req.StatusID,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	metrics.TasksCreatedTotal.Inc()
	respond.Created(w, task)
}

// Get returns a task with its project and status names.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	taskDetail(w, r, h.logger, h.svc.GetTaskDetail)
}

// GetOwner returns a task with its owner's username and email.
func (h *Handler) GetOwner(w http.ResponseWriter, r *http.Request) {
	taskDetail(w, r, h.logger, h.svc.GetTaskOwnerDetail)
}

// GetProject returns a task with its project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	taskDetail(w, r, h.logger, h.svc.GetTaskProjectDetail)
}

// Update applies a partial update to a task.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, apiErr := respond.PathID(r, "id")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}

	var patch models.TaskPatch
	if err := respond.Decode(r, &patch); err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		respond.JSONError(w, respond.BadRequest("name cannot be empty"))
		return
	}

	task, err := h.svc.UpdateTask(r.Context(), id, patch)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, task)
}

// Delete removes a task.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := respond.PathID(r, "id")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	h.logger.Info("task deleted",
		zap.Int64("task_id", id),
		zap.Int64("by_user", middleware.GetUserID(r.Context())))
	respond.NoContent(w)
}

func taskDetail[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, fetch func(context.Context, int64) (T, error)) {
	id, apiErr := respond.PathID(r, "id")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}

	detail, err := fetch(r.Context(), id)
	if err != nil {
		respond.Error(w, r, logger, err)
		return
	}
	respond.OK(w, detail)
}
