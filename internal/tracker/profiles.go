package tracker

import (
	"context"
	"fmt"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// CreateUserProfile assigns a role and a technology to a user. References
// are checked user, then role, then technology; nothing is written unless
// all three exist.
func (s *Service) CreateUserProfile(ctx context.Context, userID, roleID, technologyID int64) (*models.UserProfile, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("create user profile: %w", err)
	}

	role, err := s.store.Roles().GetByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("create user profile: %w", err)
	}
	if role == nil {
		return nil, apperrors.NotFound(apperrors.KindRole)
	}

	tech, err := s.store.Technologies().GetByID(ctx, technologyID)
	if err != nil {
		return nil, fmt.Errorf("create user profile: %w", err)
	}
	if tech == nil {
		return nil, apperrors.NotFound(apperrors.KindTechnology)
	}

	profile := &models.UserProfile{
		UserID:       userID,
		RoleID:       roleID,
		TechnologyID: technologyID,
		CreatedAt:    s.now(),
	}
	if err := s.store.Profiles().Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create user profile: %w", err)
	}
	return profile, nil
}

// GetUserProfile returns the profile of userID with role and technology names.
func (s *Service) GetUserProfile(ctx context.Context, userID int64) (*models.UserProfileDetail, error) {
	detail, err := s.store.Profiles().GetDetailByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	if detail == nil {
		return nil, apperrors.NotFound(apperrors.KindUserProfile)
	}
	return detail, nil
}
