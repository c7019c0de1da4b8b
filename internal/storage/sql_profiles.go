package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

type sqlProfileRepo struct {
	conn
}

func (r *sqlProfileRepo) Create(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, role_id, technology_id, created_at)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.insert(ctx, query,
		profile.UserID, profile.RoleID, profile.TechnologyID, profile.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user profile: %w", apperrors.Conflict("user_profile"))
		}
		return fmt.Errorf("insert user profile: %w", err)
	}
	profile.ID = id
	return nil
}

func (r *sqlProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, role_id, technology_id, created_at
		FROM user_profiles WHERE user_id = ?
	`
	p := &models.UserProfile{}
	err := r.queryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.RoleID, &p.TechnologyID, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (r *sqlProfileRepo) GetDetailByUserID(ctx context.Context, userID int64) (*models.UserProfileDetail, error) {
	query := `
		SELECT p.id, p.user_id, p.created_at, r.name, t.name
		FROM user_profiles p
		JOIN roles r ON r.id = p.role_id
		JOIN technologies t ON t.id = p.technology_id
		WHERE p.user_id = ?
	`
	d := &models.UserProfileDetail{}
	err := r.queryRow(ctx, query, userID).Scan(
		&d.ID, &d.UserID, &d.CreatedAt, &d.RoleName, &d.TechnologyName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile detail: %w", err)
	}
	d.CreatedAt = d.CreatedAt.UTC()
	return d, nil
}
