package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/models"
)

// CreateProject creates a project owned by creatorID.
func (s *Service) CreateProject(ctx context.Context, name, description string, creatorID int64) (*models.Project, error) {
	if err := s.requireUser(ctx, creatorID); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	project := models.NewProject(name, description, creatorID)
	project.CreatedAt = s.now()
	project.UpdatedAt = project.CreatedAt
	if err := s.store.Projects().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("project created",
		zap.Int64("project_id", project.ID),
		zap.Int64("creator_id", creatorID))
	return project, nil
}

// ListProjectsByCreator returns the projects userID created.
func (s *Service) ListProjectsByCreator(ctx context.Context, userID int64) ([]*models.Project, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("list projects by creator: %w", err)
	}
	projects, err := s.store.Projects().ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects by creator: %w", err)
	}
	return projects, nil
}

// AddProjectMember records that userID joined projectID. The user is
// checked before the project.
func (s *Service) AddProjectMember(ctx context.Context, userID, projectID int64) (*models.ProjectMembership, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("add project member: %w", err)
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("add project member: %w", err)
	}

	member := &models.ProjectMembership{
		UserID:    userID,
		ProjectID: projectID,
		JoinedAt:  s.now(),
	}
	if err := s.store.Projects().AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("add project member: %w", err)
	}
	return member, nil
}

// ListUserProjects returns the projects userID has joined.
func (s *Service) ListUserProjects(ctx context.Context, userID int64) ([]*models.Project, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}
	projects, err := s.store.Projects().ListForMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}
	return projects, nil
}

// ListProjectTasks returns the tasks of projectID.
func (s *Service) ListProjectTasks(ctx context.Context, projectID int64) ([]*models.Task, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	tasks, err := s.store.Tasks().ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	return tasks, nil
}
