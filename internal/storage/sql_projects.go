package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

const projectColumns = `p.id, p.name, p.description, p.creator_id, p.created_at, p.updated_at`

type sqlProjectRepo struct {
	conn
}

func (r *sqlProjectRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (name, description, creator_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.insert(ctx, query,
		project.Name, project.Description, project.CreatorID,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	project.ID = id
	return nil
}

func (r *sqlProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	project, err := scanProject(r.queryRow(ctx, `SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return project, nil
}

func (r *sqlProjectRepo) ListByCreator(ctx context.Context, userID int64) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects p WHERE p.creator_id = ? ORDER BY p.id`
	projects, err := r.list(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects by creator: %w", err)
	}
	return projects, nil
}

func (r *sqlProjectRepo) AddMember(ctx context.Context, member *models.ProjectMembership) error {
	query := `
		INSERT INTO project_members (user_id, project_id, joined_at)
		VALUES (?, ?, ?)
	`
	id, err := r.insert(ctx, query, member.UserID, member.ProjectID, member.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("add project member: %w", apperrors.Conflict("membership"))
		}
		return fmt.Errorf("add project member: %w", err)
	}
	member.ID = id
	return nil
}

func (r *sqlProjectRepo) ListForMember(ctx context.Context, userID int64) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		INNER JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = ?
		ORDER BY p.id
	`
	projects, err := r.list(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects for member: %w", err)
	}
	return projects, nil
}

func (r *sqlProjectRepo) list(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var description sql.NullString
	err := row.Scan(
		&project.ID, &project.Name, &description, &project.CreatorID,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	project.Description = description.String
	project.CreatedAt = project.CreatedAt.UTC()
	project.UpdatedAt = project.UpdatedAt.UTC()
	return project, nil
}
