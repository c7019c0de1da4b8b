// Package storage provides database storage interfaces and implementations.
//
// Repository lookups return (nil, nil) when the row does not exist; callers
// decide which not-found error to report.
package storage

import (
	"context"
	"database/sql"

	"github.com/good-yellow-bee/taskboard/internal/models"
)

// Storage is the main interface for database operations.
type Storage interface {
	// Open initializes the database connection.
	Open(ctx context.Context) error
	// Close closes the database connection.
	Close() error
	// Migrate applies pending schema migrations.
	Migrate(ctx context.Context) error
	// DB returns the underlying pool for health checks.
	DB() *sql.DB
	// EnsureAdminUser creates a default admin with a random password if no
	// users exist. It returns nil when users are already present.
	EnsureAdminUser(ctx context.Context) (*BootstrapAdmin, error)
	// EnsureDefaultStatuses seeds the task status catalog when it is empty.
	EnsureDefaultStatuses(ctx context.Context) error

	// Repository accessors
	Users() UserRepository
	Roles() RoleRepository
	Technologies() TechnologyRepository
	TaskStatuses() TaskStatusRepository
	Profiles() ProfileRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
}

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts the user and sets its ID. Duplicate usernames or emails
	// fail with apperrors.ErrConflict.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByLogin matches either the username or the email.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// RoleRepository stores the role catalog.
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id int64) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

// TechnologyRepository stores the technology catalog.
type TechnologyRepository interface {
	Create(ctx context.Context, tech *models.Technology) error
	GetByID(ctx context.Context, id int64) (*models.Technology, error)
	List(ctx context.Context) ([]*models.Technology, error)
}

// TaskStatusRepository stores the task status catalog.
type TaskStatusRepository interface {
	Create(ctx context.Context, status *models.TaskStatus) error
	GetByID(ctx context.Context, id int64) (*models.TaskStatus, error)
	List(ctx context.Context) ([]*models.TaskStatus, error)
	Count(ctx context.Context) (int64, error)
}

// ProfileRepository stores user profiles.
type ProfileRepository interface {
	// Create fails with apperrors.ErrConflict if the user already has one.
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	GetDetailByUserID(ctx context.Context, userID int64) (*models.UserProfileDetail, error)
}

// ProjectRepository stores projects and their memberships.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	ListByCreator(ctx context.Context, userID int64) ([]*models.Project, error)
	// AddMember fails with apperrors.ErrConflict if the user already joined.
	AddMember(ctx context.Context, member *models.ProjectMembership) error
	// ListForMember returns the projects the user has joined.
	ListForMember(ctx context.Context, userID int64) ([]*models.Project, error)
}

// TaskRepository stores tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*models.Task, error)
	GetDetail(ctx context.Context, id int64) (*models.TaskDetail, error)
	GetOwnerDetail(ctx context.Context, id int64) (*models.TaskOwnerDetail, error)
	GetProjectDetail(ctx context.Context, id int64) (*models.TaskProjectDetail, error)
	Update(ctx context.Context, task *models.Task) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// BootstrapAdmin carries the credentials of a freshly created admin.
type BootstrapAdmin struct {
	Username string
	Password string
}
