// Package projects provides project and membership API endpoints.
package projects

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/middleware"
	"github.com/good-yellow-bee/taskboard/internal/api/respond"
	"github.com/good-yellow-bee/taskboard/internal/metrics"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// Service is the subset of the tracker used by project endpoints.
type Service interface {
	CreateProject(ctx context.Context, name, description string, creatorID int64) (*models.Project, error)
	ListProjectsByCreator(ctx context.Context, userID int64) ([]*models.Project, error)
	AddProjectMember(ctx context.Context, userID, projectID int64) (*models.ProjectMembership, error)
	ListProjectTasks(ctx context.Context, projectID int64) ([]*models.Task, error)
}

// Handler handles project endpoints.
type Handler struct {
	svc    Service
	logger *zap.Logger
}

// NewHandler creates a new project handler.
func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the request body for creating a project. CreatorID
// defaults to the caller.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorID   int64  `json:"creator_id"`
}

// AddMemberRequest is the request body for joining a user to a project.
type AddMemberRequest struct {
	UserID    int64 `json:"user_id"`
	ProjectID int64 `json:"project_id"`
}

// Create creates a new project.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}
	if err := ValidateName(req.Name); err != nil {
		respond.JSONError(w, respond.BadRequest(err.Error()))
		return
	}
	if req.CreatorID == 0 {
		req.CreatorID = middleware.GetUserID(r.Context())
	}

	project, err := h.svc.CreateProject(r.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.CreatorID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	metrics.ProjectsCreatedTotal.Inc()
	respond.Created(w, project)
}

// ListByCreator returns the projects created by the {userId} user.
func (h *Handler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := respond.PathID(r, "userId")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}

	projects, err := h.svc.ListProjectsByCreator(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, projects)
}

// AddMember adds a user to a project.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req AddMemberRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}
	if req.UserID == 0 || req.ProjectID == 0 {
		respond.JSONError(w, respond.BadRequest("user_id and project_id required"))
		return
	}

	member, err := h.svc.AddProjectMember(r.Context(), req.UserID, req.ProjectID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.Created(w, member)
}

// ListTasks returns the tasks of the {id} project.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, apiErr := respond.PathID(r, "id")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}

	tasks, err := h.svc.ListProjectTasks(r.Context(), projectID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, tasks)
}
