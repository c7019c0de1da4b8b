// Package users provides user and profile API endpoints.
package users

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/middleware"
	"github.com/good-yellow-bee/taskboard/internal/api/respond"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// Service is the subset of the tracker used by user endpoints.
type Service interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUserProfile(ctx context.Context, userID, roleID, technologyID int64) (*models.UserProfile, error)
	GetUserProfile(ctx context.Context, userID int64) (*models.UserProfileDetail, error)
	ListUserProjects(ctx context.Context, userID int64) ([]*models.Project, error)
}

// Handler handles user management endpoints.
type Handler struct {
	svc    Service
	logger *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateProfileRequest is the request body for creating a profile.
type CreateProfileRequest struct {
	UserID       int64 `json:"user_id"`
	RoleID       int64 `json:"role_id"`
	TechnologyID int64 `json:"technology_id"`
}

// List returns all users (admin only).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, users)
}

// GetByID returns a user by ID.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, apiErr := respond.PathID(r, "id")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, user)
}

// GetCurrentUser returns the authenticated user.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, user)
}

// CreateProfile assigns a role and a technology to a user.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}
	if req.UserID == 0 || req.RoleID == 0 || req.TechnologyID == 0 {
		respond.JSONError(w, respond.BadRequest("user_id, role_id and technology_id required"))
		return
	}

	profile, err := h.svc.CreateUserProfile(r.Context(), req.UserID, req.RoleID, req.TechnologyID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	h.logger.Info("user profile created",
		zap.Int64("profile_id", profile.ID),
		zap.Int64("user_id", profile.UserID))
	respond.Created(w, profile)
}

// GetProfile returns a user's profile with role and technology names.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, apiErr := respond.PathID(r, "id")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}

	profile, err := h.svc.GetUserProfile(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, profile)
}

// ListProjects returns the projects a user is a member of.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	id, apiErr := respond.PathID(r, "id")
	if apiErr != nil {
		respond.JSONError(w, apiErr)
		return
	}
	h.listProjects(w, r, id)
}

// ListMyProjects returns the projects the authenticated user is a member of.
func (h *Handler) ListMyProjects(w http.ResponseWriter, r *http.Request) {
	h.listProjects(w, r, middleware.GetUserID(r.Context()))
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request, userID int64) {
	projects, err := h.svc.ListUserProjects(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.OK(w, projects)
}
