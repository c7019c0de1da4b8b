package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// CreateTaskInput is the data needed to create a task.
type CreateTaskInput struct {
	ProjectID   int64
	Name        string
	Description string
	OwnerID     int64
	StatusID    int64
}

// CreateTask creates a task. References are checked project, then owner,
// then status.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if err := s.requireProject(ctx, in.ProjectID); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if err := s.requireUser(ctx, in.OwnerID); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if err := s.requireTaskStatus(ctx, in.StatusID); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	task := models.NewTask(in.ProjectID, in.Name, in.Description, in.OwnerID, in.StatusID)
	task.CreatedAt = s.now()
	task.UpdatedAt = task.CreatedAt
	if err := s.store.Tasks().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("task created",
		zap.Int64("task_id", task.ID),
		zap.Int64("project_id", task.ProjectID))
	return task, nil
}

// GetTaskDetail returns a task with its project and status names.
func (s *Service) GetTaskDetail(ctx context.Context, taskID int64) (*models.TaskDetail, error) {
	detail, err := s.store.Tasks().GetDetail(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task detail: %w", err)
	}
	if detail == nil {
		return nil, apperrors.NotFound(apperrors.KindTask)
	}
	return detail, nil
}

// GetTaskOwnerDetail returns a task with its owner's username and email.
func (s *Service) GetTaskOwnerDetail(ctx context.Context, taskID int64) (*models.TaskOwnerDetail, error) {
	detail, err := s.store.Tasks().GetOwnerDetail(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task owner detail: %w", err)
	}
	if detail == nil {
		return nil, apperrors.NotFound(apperrors.KindTask)
	}
	return detail, nil
}

// GetTaskProjectDetail returns a task with the project it belongs to.
func (s *Service) GetTaskProjectDetail(ctx context.Context, taskID int64) (*models.TaskProjectDetail, error) {
	detail, err := s.store.Tasks().GetProjectDetail(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task project detail: %w", err)
	}
	if detail == nil {
		return nil, apperrors.NotFound(apperrors.KindTask)
	}
	return detail, nil
}

// UpdateTask applies patch to a task and bumps its updated_at.
func (s *Service) UpdateTask(ctx context.Context, taskID int64, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if task == nil {
		return nil, apperrors.NotFound(apperrors.KindTask)
	}
	if patch.StatusID != nil {
		if err := s.requireTaskStatus(ctx, *patch.StatusID); err != nil {
			return nil, fmt.Errorf("update task: %w", err)
		}
	}

	patch.Apply(task)
	task.UpdatedAt = s.now()
	if err := s.store.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task permanently.
func (s *Service) DeleteTask(ctx context.Context, taskID int64) error {
	deleted, err := s.store.Tasks().Delete(ctx, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return apperrors.NotFound(apperrors.KindTask)
	}
	s.logger.Info("task deleted", zap.Int64("task_id", taskID))
	return nil
}
