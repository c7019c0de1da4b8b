package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/good-yellow-bee/taskboard/internal/logging"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLStorage implements Storage on database/sql for SQLite and PostgreSQL.
type SQLStorage struct {
	driverName string
	dsn        string
	dialect    dialect
	logger     *zap.Logger
	db         *sql.DB

	users        *sqlUserRepo
	roles        *sqlRoleRepo
	technologies *sqlTechnologyRepo
	statuses     *sqlTaskStatusRepo
	profiles     *sqlProfileRepo
	projects     *sqlProjectRepo
	tasks        *sqlTaskRepo
}

// New returns the storage for driver ("sqlite" or "postgres").
func New(driver, dsn string, logger *zap.Logger) (*SQLStorage, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLiteStorage(dsn, logger), nil
	case DriverPostgres:
		return NewPostgresStorage(dsn, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open initializes the database connection.
func (s *SQLStorage) Open(ctx context.Context) error {
	db, err := sql.Open(s.driverName, s.dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	s.configurePool(db)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	s.attach(db)
	s.logger.Info("database opened",
		zap.String("driver", s.dialect.String()),
		zap.String("dsn", logging.SanitizeDSN(s.dsn)))
	return nil
}

func (s *SQLStorage) configurePool(db *sql.DB) {
	if s.dialect == dialectSQLite {
		db.SetMaxOpenConns(1) // SQLite is single-writer
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
}

// attach wires the repositories to db.
func (s *SQLStorage) attach(db *sql.DB) {
	c := conn{db: db, dialect: s.dialect}
	s.db = db
	s.users = &sqlUserRepo{conn: c}
	s.roles = &sqlRoleRepo{conn: c}
	s.technologies = &sqlTechnologyRepo{conn: c}
	s.statuses = &sqlTaskStatusRepo{conn: c}
	s.profiles = &sqlProfileRepo{conn: c}
	s.projects = &sqlProjectRepo{conn: c}
	s.tasks = &sqlTaskRepo{conn: c}
}

// Close closes the database connection.
func (s *SQLStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection for health checks.
func (s *SQLStorage) DB() *sql.DB {
	return s.db
}

// EnsureAdminUser creates default admin if no users exist.
func (s *SQLStorage) EnsureAdminUser(ctx context.Context) (*BootstrapAdmin, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	password, err := generateRandomPassword(16)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := models.NewUser("admin", "admin@localhost", string(hash), true)
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}
	return &BootstrapAdmin{Username: admin.Username, Password: password}, nil
}

// EnsureDefaultStatuses inserts the default task statuses into an empty catalog.
func (s *SQLStorage) EnsureDefaultStatuses(ctx context.Context) error {
	count, err := s.statuses.Count(ctx)
	if err != nil {
		return fmt.Errorf("count task statuses: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range models.DefaultTaskStatuses {
		if err := s.statuses.Create(ctx, &models.TaskStatus{Name: name}); err != nil {
			return fmt.Errorf("seed task status %s: %w", name, err)
		}
	}
	s.logger.Info("seeded default task statuses", zap.Strings("statuses", models.DefaultTaskStatuses))
	return nil
}

// Users returns the user repository.
func (s *SQLStorage) Users() UserRepository {
	return s.users
}

// Roles returns the role repository.
func (s *SQLStorage) Roles() RoleRepository {
	return s.roles
}

// Technologies returns the technology repository.
func (s *SQLStorage) Technologies() TechnologyRepository {
	return s.technologies
}

// TaskStatuses returns the task status repository.
func (s *SQLStorage) TaskStatuses() TaskStatusRepository {
	return s.statuses
}

// Profiles returns the user profile repository.
func (s *SQLStorage) Profiles() ProfileRepository {
	return s.profiles
}

// Projects returns the project repository.
func (s *SQLStorage) Projects() ProjectRepository {
	return s.projects
}

// Tasks returns the task repository.
func (s *SQLStorage) Tasks() TaskRepository {
	return s.tasks
}

// generateRandomPassword generates a random password of the specified length.
func generateRandomPassword(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b)[:length], nil
}
