package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// Register creates an account. A taken username or email fails with a
// ConflictError naming the field.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	users := s.store.Users()

	existing, err := users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("username")
	}
	existing, err = users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("email")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := models.NewUser(in.Username, in.Email, hash, in.IsAdmin)
	user.CreatedAt = s.now()
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("admin", user.IsAdmin))
	return user, nil
}

// Authenticate checks login (a username or an email) and password and
// returns the user with the scopes to grant. requested narrows the grant to
// its intersection with the user's scopes; empty means all of them. A
// non-empty request that matches none of them fails with ErrInvalidScope.
func (s *Service) Authenticate(ctx context.Context, login, password string, requested []string) (*models.User, []string, error) {
	user, err := s.store.Users().GetByLogin(ctx, login)
	if err != nil {
		return nil, nil, fmt.Errorf("authenticate: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	scopes := grantScopes(user.Scopes(), requested)
	if len(scopes) == 0 {
		return nil, nil, apperrors.ErrInvalidScope
	}
	return user, scopes, nil
}

// ResolveLogin returns the account a username or email names, or nil.
func (s *Service) ResolveLogin(ctx context.Context, login string) (*models.User, error) {
	user, err := s.store.Users().GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("resolve login: %w", err)
	}
	return user, nil
}

func grantScopes(entitled, requested []string) []string {
	if len(requested) == 0 {
		return entitled
	}
	granted := make([]string, 0, len(entitled))
	for _, scope := range entitled {
		for _, r := range requested {
			if r == scope {
				granted = append(granted, scope)
				break
			}
		}
	}
	return granted
}

// GetUser returns the user with id.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound(apperrors.KindUser)
	}
	return user, nil
}

// ListUsers returns every user ordered by id.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
