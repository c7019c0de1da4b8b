package tracker

import (
	"context"
	"fmt"

	"github.com/good-yellow-bee/taskboard/internal/models"
)

// CreateRole adds a role to the catalog. Names are not unique.
func (s *Service) CreateRole(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{Name: name}
	if err := s.store.Roles().Create(ctx, role); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

// ListRoles returns the role catalog.
func (s *Service) ListRoles(ctx context.Context) ([]*models.Role, error) {
	roles, err := s.store.Roles().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// CreateTechnology adds a technology to the catalog. Names are not unique.
func (s *Service) CreateTechnology(ctx context.Context, name string) (*models.Technology, error) {
	tech := &models.Technology{Name: name}
	if err := s.store.Technologies().Create(ctx, tech); err != nil {
		return nil, fmt.Errorf("create technology: %w", err)
	}
	return tech, nil
}

// ListTechnologies returns the technology catalog.
func (s *Service) ListTechnologies(ctx context.Context) ([]*models.Technology, error) {
	techs, err := s.store.Technologies().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	return techs, nil
}

// CreateTaskStatus adds a task status to the catalog. Names are not unique.
func (s *Service) CreateTaskStatus(ctx context.Context, name string) (*models.TaskStatus, error) {
	status := &models.TaskStatus{Name: name}
	if err := s.store.TaskStatuses().Create(ctx, status); err != nil {
		return nil, fmt.Errorf("create task status: %w", err)
	}
	return status, nil
}

// ListTaskStatuses returns the task status catalog.
func (s *Service) ListTaskStatuses(ctx context.Context) ([]*models.TaskStatus, error) {
	statuses, err := s.store.TaskStatuses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}
	return statuses, nil
}
