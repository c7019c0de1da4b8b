// Package tracker implements the project and task tracking operations on top
// of the storage repositories.
//
// Every create validates the rows it references in a fixed order and stops at
// the first missing one with an apperrors.NotFoundError naming its kind.
package tracker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/storage"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// Service is the tracker's domain API.
type Service struct {
	store  storage.Storage
	hasher PasswordHasher
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a tracker service.
func NewService(store storage.Storage, hasher PasswordHasher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		hasher: hasher,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) requireUser(ctx context.Context, id int64) error {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound(apperrors.KindUser)
	}
	return nil
}

func (s *Service) requireProject(ctx context.Context, id int64) error {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return apperrors.NotFound(apperrors.KindProject)
	}
	return nil
}

func (s *Service) requireTaskStatus(ctx context.Context, id int64) error {
	status, err := s.store.TaskStatuses().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if status == nil {
		return apperrors.NotFound(apperrors.KindTaskStatus)
	}
	return nil
}
