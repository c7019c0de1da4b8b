package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

const userColumns = `id, username, email, password_hash, is_admin, created_at`

type sqlUserRepo struct {
	conn
}

func (r *sqlUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.insert(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

func (r *sqlUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	// A username match wins over an email match.
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ?
		ORDER BY CASE WHEN username = ? THEN 0 ELSE 1 END LIMIT 1`
	user, err := r.getOne(ctx, query, login, login, login)
	if err != nil {
		return nil, fmt.Errorf("get user by login: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepo) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *sqlUserRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, "users")
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *sqlUserRepo) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user, err := scanUser(r.queryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}
