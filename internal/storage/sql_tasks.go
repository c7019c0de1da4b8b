package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

const taskColumns = `id, project_id, name, description, status_id, owner_id, created_at, updated_at`

type sqlTaskRepo struct {
	conn
}

func (r *sqlTaskRepo) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (project_id, name, description, status_id, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.insert(ctx, query,
		task.ProjectID, task.Name, task.Description, task.StatusID, task.OwnerID,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	task.ID = id
	return nil
}

func (r *sqlTaskRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := scanTask(r.queryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return task, nil
}

func (r *sqlTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*models.Task, error) {
	rows, err := r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *sqlTaskRepo) GetDetail(ctx context.Context, id int64) (*models.TaskDetail, error) {
	query := `
		SELECT t.id, t.name, t.description, p.name, p.description, s.name
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		JOIN task_statuses s ON s.id = t.status_id
		WHERE t.id = ?
	`
	d := &models.TaskDetail{}
	var taskDesc, projectDesc sql.NullString
	err := r.queryRow(ctx, query, id).Scan(
		&d.TaskID, &d.TaskName, &taskDesc, &d.ProjectName, &projectDesc, &d.StatusName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task detail: %w", err)
	}
	d.TaskDescription = taskDesc.String
	d.ProjectDescription = projectDesc.String
	return d, nil
}

func (r *sqlTaskRepo) GetOwnerDetail(ctx context.Context, id int64) (*models.TaskOwnerDetail, error) {
	query := `
		SELECT t.id, t.name, t.description, u.username, u.email
		FROM tasks t
		JOIN users u ON u.id = t.owner_id
		WHERE t.id = ?
	`
	d := &models.TaskOwnerDetail{}
	var taskDesc sql.NullString
	err := r.queryRow(ctx, query, id).Scan(
		&d.TaskID, &d.TaskName, &taskDesc, &d.OwnerUsername, &d.OwnerEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task owner detail: %w", err)
	}
	d.TaskDescription = taskDesc.String
	return d, nil
}

func (r *sqlTaskRepo) GetProjectDetail(ctx context.Context, id int64) (*models.TaskProjectDetail, error) {
	query := `
		SELECT t.id, t.name, t.description, p.id, p.name, p.description
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = ?
	`
	d := &models.TaskProjectDetail{}
	var taskDesc, projectDesc sql.NullString
	err := r.queryRow(ctx, query, id).Scan(
		&d.TaskID, &d.TaskName, &taskDesc, &d.ProjectID, &d.ProjectName, &projectDesc,
	)
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task project detail: %w", err)
	}
	d.TaskDescription = taskDesc.String
	d.ProjectDescription = projectDesc.String
	return d, nil
}

func (r *sqlTaskRepo) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET name = ?, description = ?, status_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.exec(ctx, query,
		task.Name, task.Description, task.StatusID, task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update task %d: %w", task.ID, apperrors.NotFound(apperrors.KindTask))
	}
	return nil
}

func (r *sqlTaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.exec(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return rows > 0, nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var description sql.NullString
	err := row.Scan(
		&task.ID, &task.ProjectID, &task.Name, &description, &task.StatusID, &task.OwnerID,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Description = description.String
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return task, nil
}
