package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/taskboard/internal/models"
)

// The role, technology and task status catalogs share one shape: an id and
// a free-text name with no uniqueness constraint.

func (c conn) insertNamed(ctx context.Context, table, name string) (int64, error) {
	return c.insert(ctx, "INSERT INTO "+table+" (name) VALUES (?)", name)
}

// getNamed returns found=false when the row is absent.
func (c conn) getNamed(ctx context.Context, table string, id int64) (name string, found bool, err error) {
	err = c.queryRow(ctx, "SELECT name FROM "+table+" WHERE id = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (c conn) listNamed(ctx context.Context, table string, each func(id int64, name string)) error {
	rows, err := c.query(ctx, "SELECT id, name FROM "+table+" ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		each(id, name)
	}
	return rows.Err()
}

type sqlRoleRepo struct {
	conn
}

func (r *sqlRoleRepo) Create(ctx context.Context, role *models.Role) error {
	id, err := r.insertNamed(ctx, "roles", role.Name)
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	role.ID = id
	return nil
}

func (r *sqlRoleRepo) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	name, found, err := r.getNamed(ctx, "roles", id)
	if err != nil {
		return nil, fmt.Errorf("get role by id: %w", err)
	}
	if !found {
		//nolint:nilnil
		return nil, nil
	}
	return &models.Role{ID: id, Name: name}, nil
}

func (r *sqlRoleRepo) List(ctx context.Context) ([]*models.Role, error) {
	roles := []*models.Role{}
	err := r.listNamed(ctx, "roles", func(id int64, name string) {
		roles = append(roles, &models.Role{ID: id, Name: name})
	})
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

type sqlTechnologyRepo struct {
	conn
}

func (r *sqlTechnologyRepo) Create(ctx context.Context, tech *models.Technology) error {
	id, err := r.insertNamed(ctx, "technologies", tech.Name)
	if err != nil {
		return fmt.Errorf("insert technology: %w", err)
	}
	tech.ID = id
	return nil
}

func (r *sqlTechnologyRepo) GetByID(ctx context.Context, id int64) (*models.Technology, error) {
	name, found, err := r.getNamed(ctx, "technologies", id)
	if err != nil {
		return nil, fmt.Errorf("get technology by id: %w", err)
	}
	if !found {
		//nolint:nilnil
		return nil, nil
	}
	return &models.Technology{ID: id, Name: name}, nil
}

func (r *sqlTechnologyRepo) List(ctx context.Context) ([]*models.Technology, error) {
	techs := []*models.Technology{}
	err := r.listNamed(ctx, "technologies", func(id int64, name string) {
		techs = append(techs, &models.Technology{ID: id, Name: name})
	})
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	return techs, nil
}

type sqlTaskStatusRepo struct {
	conn
}

func (r *sqlTaskStatusRepo) Create(ctx context.Context, status *models.TaskStatus) error {
	id, err := r.insertNamed(ctx, "task_statuses", status.Name)
	if err != nil {
		return fmt.Errorf("insert task status: %w", err)
	}
	status.ID = id
	return nil
}

func (r *sqlTaskStatusRepo) GetByID(ctx context.Context, id int64) (*models.TaskStatus, error) {
	name, found, err := r.getNamed(ctx, "task_statuses", id)
	if err != nil {
		return nil, fmt.Errorf("get task status by id: %w", err)
	}
	if !found {
		//nolint:nilnil
		return nil, nil
	}
	return &models.TaskStatus{ID: id, Name: name}, nil
}

func (r *sqlTaskStatusRepo) List(ctx context.Context) ([]*models.TaskStatus, error) {
	statuses := []*models.TaskStatus{}
	err := r.listNamed(ctx, "task_statuses", func(id int64, name string) {
		statuses = append(statuses, &models.TaskStatus{ID: id, Name: name})
	})
	if err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}
	return statuses, nil
}

func (r *sqlTaskStatusRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, "task_statuses")
	if err != nil {
		return 0, fmt.Errorf("count task statuses: %w", err)
	}
	return n, nil
}
