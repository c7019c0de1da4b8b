// Package catalog provides the role, technology and task status endpoints.
package catalog

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/respond"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// Service is the subset of the tracker used by catalog endpoints.
type Service interface {
	CreateRole(ctx context.Context, name string) (*models.Role, error)
	ListRoles(ctx context.Context) ([]*models.Role, error)
	CreateTechnology(ctx context.Context, name string) (*models.Technology, error)
	ListTechnologies(ctx context.Context) ([]*models.Technology, error)
	CreateTaskStatus(ctx context.Context, name string) (*models.TaskStatus, error)
	ListTaskStatuses(ctx context.Context) ([]*models.TaskStatus, error)
}

// Handler handles catalog endpoints.
type Handler struct {
	svc    Service
	logger *zap.Logger
}

// NewHandler creates a new catalog handler.
func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the request body for every catalog entry.
type CreateRequest struct {
	Name string `json:"name"`
}

// ListRoles returns all roles.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.logger, h.svc.ListRoles)
}

// CreateRole creates a role (admin only).
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	create(w, r, h.logger, "role", h.svc.CreateRole)
}

// ListTechnologies returns all technologies.
func (h *Handler) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.logger, h.svc.ListTechnologies)
}

// CreateTechnology creates a technology (admin only).
func (h *Handler) CreateTechnology(w http.ResponseWriter, r *http.Request) {
	create(w, r, h.logger, "technology", h.svc.CreateTechnology)
}

// ListTaskStatuses returns all task statuses.
func (h *Handler) ListTaskStatuses(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.logger, h.svc.ListTaskStatuses)
}

// CreateTaskStatus creates a task status (admin only).
func (h *Handler) CreateTaskStatus(w http.ResponseWriter, r *http.Request) {
	create(w, r, h.logger, "task status", h.svc.CreateTaskStatus)
}

func list[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, fetch func(context.Context) ([]T, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		respond.Error(w, r, logger, err)
		return
	}
	respond.OK(w, items)
}

func create[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, kind string, save func(context.Context, string) (T, error)) {
	var req CreateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.JSONError(w, respond.BadRequest("name is required"))
		return
	}

	item, err := save(r.Context(), name)
	if err != nil {
		respond.Error(w, r, logger, err)
		return
	}

	logger.Info(kind+" created", zap.String("name", name))
	respond.Created(w, item)
}
