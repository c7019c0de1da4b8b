package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

func setupTestDB(t *testing.T) *SQLStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStorage(dbPath, nil)
	if err := store.Open(context.Background()); err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate database: %v", err)
	}
	return store
}

func createTestUser(t *testing.T, store *SQLStorage, username string) *models.User {
	t.Helper()
	user := models.NewUser(username, username+"@example.com", "hashed-password", false)
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
	}{
		{"/tmp/taskboard.db", "file:/tmp/taskboard.db?"},
		{"file:taskboard.db", "file:taskboard.db?"},
		{"file:taskboard.db?mode=rwc", "file:taskboard.db?mode=rwc&"},
		{":memory:", "file::memory:?"},
	}
	for _, tt := range tests {
		dsn := sqliteDSN(tt.path)
		if !strings.HasPrefix(dsn, tt.prefix) {
			t.Errorf("sqliteDSN(%q) = %q, want prefix %q", tt.path, dsn, tt.prefix)
		}
		if !strings.Contains(dsn, "foreign_keys%281%29") {
			t.Errorf("sqliteDSN(%q) = %q, missing foreign_keys pragma", tt.path, dsn)
		}
	}
}

func TestSQLiteStorage_Migrate(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	tables := []string{"users", "roles", "technologies", "task_statuses", "user_profiles", "projects", "project_members", "tasks"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
		if err != nil {
			t.Errorf("table %s should exist: %v", table, err)
		}
	}

	// Re-running is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestUserRepository(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	user := models.NewUser("alice", "alice@x.com", "hashed-password", true)
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("id should be assigned")
	}

	got, err := store.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user by id: %v", err)
	}
	if got == nil {
		t.Fatal("user should exist")
	}
	if got.Username != "alice" || got.Email != "alice@x.com" || !got.IsAdmin {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt.Sub(user.CreatedAt).Abs() > time.Second {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, user.CreatedAt)
	}

	for _, login := range []string{"alice", "alice@x.com"} {
		got, err = store.Users().GetByLogin(ctx, login)
		if err != nil {
			t.Fatalf("get user by login %q: %v", login, err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("login %q should resolve to user %d", login, user.ID)
		}
	}

	got, err = store.Users().GetByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if got != nil {
		t.Error("missing user should be nil")
	}

	count, err := store.Users().Count(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestUserRepository_DuplicateIsConflict(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, store, "alice")

	dup := models.NewUser("alice", "other@example.com", "hash", false)
	err := store.Users().Create(ctx, dup)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate username err = %v, want ErrConflict", err)
	}

	dup = models.NewUser("bob", "alice@example.com", "hash", false)
	err = store.Users().Create(ctx, dup)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate email err = %v, want ErrConflict", err)
	}
}

func TestCatalogRepositories(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	role := &models.Role{Name: "backend"}
	if err := store.Roles().Create(ctx, role); err != nil {
		t.Fatalf("create role: %v", err)
	}
	// Names are not unique.
	if err := store.Roles().Create(ctx, &models.Role{Name: "backend"}); err != nil {
		t.Fatalf("create duplicate role: %v", err)
	}
	roles, err := store.Roles().List(ctx)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if len(roles) != 2 {
		t.Errorf("roles = %d, want 2", len(roles))
	}

	got, err := store.Roles().GetByID(ctx, role.ID)
	if err != nil || got == nil || got.Name != "backend" {
		t.Errorf("get role = %+v, %v", got, err)
	}
	got, err = store.Roles().GetByID(ctx, 999)
	if err != nil || got != nil {
		t.Errorf("missing role = %+v, %v", got, err)
	}

	tech := &models.Technology{Name: "go"}
	if err := store.Technologies().Create(ctx, tech); err != nil {
		t.Fatalf("create technology: %v", err)
	}
	techs, err := store.Technologies().List(ctx)
	if err != nil || len(techs) != 1 {
		t.Errorf("list technologies = %d, %v", len(techs), err)
	}
}

func TestEnsureDefaultStatuses(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := store.EnsureDefaultStatuses(ctx); err != nil {
			t.Fatalf("ensure statuses: %v", err)
		}
	}

	statuses, err := store.TaskStatuses().List(ctx)
	if err != nil {
		t.Fatalf("list statuses: %v", err)
	}
	if len(statuses) != len(models.DefaultTaskStatuses) {
		t.Fatalf("statuses = %d, want %d", len(statuses), len(models.DefaultTaskStatuses))
	}
	for i, s := range statuses {
		if s.Name != models.DefaultTaskStatuses[i] {
			t.Errorf("status %d = %s, want %s", i, s.Name, models.DefaultTaskStatuses[i])
		}
	}
}

func TestEnsureAdminUser(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	admin, err := store.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if admin == nil || admin.Username != "admin" || len(admin.Password) != 16 {
		t.Fatalf("admin = %+v", admin)
	}

	user, err := store.Users().GetByUsername(ctx, "admin")
	if err != nil || user == nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if !user.IsAdmin {
		t.Error("bootstrap user should be admin")
	}
	if user.PasswordHash == admin.Password {
		t.Error("password stored in plaintext")
	}

	again, err := store.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
	if again != nil {
		t.Error("admin should only be created on an empty store")
	}
}

func TestProfileRepository(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, store, "alice")
	role := &models.Role{Name: "backend"}
	tech := &models.Technology{Name: "go"}
	if err := store.Roles().Create(ctx, role); err != nil {
		t.Fatalf("create role: %v", err)
	}
	if err := store.Technologies().Create(ctx, tech); err != nil {
		t.Fatalf("create technology: %v", err)
	}

	profile := &models.UserProfile{UserID: user.ID, RoleID: role.ID, TechnologyID: tech.ID, CreatedAt: time.Now().UTC()}
	if err := store.Profiles().Create(ctx, profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	detail, err := store.Profiles().GetDetailByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get profile detail: %v", err)
	}
	if detail == nil {
		t.Fatal("profile should exist")
	}
	if detail.ID != profile.ID || detail.RoleName != "backend" || detail.TechnologyName != "go" {
		t.Errorf("detail = %+v", detail)
	}

	again := &models.UserProfile{UserID: user.ID, RoleID: role.ID, TechnologyID: tech.ID, CreatedAt: time.Now().UTC()}
	if err := store.Profiles().Create(ctx, again); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("second profile err = %v, want ErrConflict", err)
	}

	missing, err := store.Profiles().GetByUserID(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("missing profile = %+v, %v", missing, err)
	}
}

func TestProjectRepository(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	project := models.NewProject("taskboard", "", alice.ID)
	if err := store.Projects().Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	got, err := store.Projects().GetByID(ctx, project.ID)
	if err != nil || got == nil {
		t.Fatalf("get project: %+v, %v", got, err)
	}
	if got.Name != "taskboard" || got.CreatorID != alice.ID || got.Description != "" {
		t.Errorf("project = %+v", got)
	}

	created, err := store.Projects().ListByCreator(ctx, alice.ID)
	if err != nil || len(created) != 1 {
		t.Errorf("list by creator = %d, %v", len(created), err)
	}

	member := &models.ProjectMembership{UserID: bob.ID, ProjectID: project.ID, JoinedAt: time.Now().UTC()}
	if err := store.Projects().AddMember(ctx, member); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if member.ID == 0 {
		t.Error("membership id should be assigned")
	}

	dup := &models.ProjectMembership{UserID: bob.ID, ProjectID: project.ID, JoinedAt: time.Now().UTC()}
	if err := store.Projects().AddMember(ctx, dup); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate member err = %v, want ErrConflict", err)
	}

	joined, err := store.Projects().ListForMember(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list for member: %v", err)
	}
	if len(joined) != 1 || joined[0].ID != project.ID {
		t.Errorf("joined = %+v", joined)
	}

	// The creator is not a member unless they join.
	joined, err = store.Projects().ListForMember(ctx, alice.ID)
	if err != nil || len(joined) != 0 {
		t.Errorf("creator joined = %d, %v", len(joined), err)
	}
}

func TestTaskRepository(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	project := models.NewProject("taskboard", "tracker", owner.ID)
	if err := store.Projects().Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := store.EnsureDefaultStatuses(ctx); err != nil {
		t.Fatalf("seed statuses: %v", err)
	}
	statuses, _ := store.TaskStatuses().List(ctx)

	task := models.NewTask(project.ID, "write docs", "api reference", owner.ID, statuses[0].ID)
	if err := store.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	detail, err := store.Tasks().GetDetail(ctx, task.ID)
	if err != nil || detail == nil {
		t.Fatalf("get detail: %+v, %v", detail, err)
	}
	if detail.ProjectName != "taskboard" || detail.StatusName != "todo" || detail.TaskDescription != "api reference" {
		t.Errorf("detail = %+v", detail)
	}

	ownerDetail, err := store.Tasks().GetOwnerDetail(ctx, task.ID)
	if err != nil || ownerDetail == nil {
		t.Fatalf("get owner detail: %+v, %v", ownerDetail, err)
	}
	if ownerDetail.OwnerUsername != "alice" || ownerDetail.OwnerEmail != "alice@example.com" {
		t.Errorf("owner detail = %+v", ownerDetail)
	}

	projectDetail, err := store.Tasks().GetProjectDetail(ctx, task.ID)
	if err != nil || projectDetail == nil {
		t.Fatalf("get project detail: %+v, %v", projectDetail, err)
	}
	if projectDetail.ProjectID != project.ID || projectDetail.ProjectDescription != "tracker" {
		t.Errorf("project detail = %+v", projectDetail)
	}

	task.Name = "write more docs"
	task.StatusID = statuses[2].ID
	task.UpdatedAt = time.Now().UTC()
	if err := store.Tasks().Update(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}
	got, _ := store.Tasks().GetByID(ctx, task.ID)
	if got.Name != "write more docs" || got.StatusID != statuses[2].ID {
		t.Errorf("updated task = %+v", got)
	}

	tasks, err := store.Tasks().ListByProject(ctx, project.ID)
	if err != nil || len(tasks) != 1 {
		t.Errorf("list by project = %d, %v", len(tasks), err)
	}

	deleted, err := store.Tasks().Delete(ctx, task.ID)
	if err != nil || !deleted {
		t.Fatalf("delete task = %v, %v", deleted, err)
	}
	deleted, err = store.Tasks().Delete(ctx, task.ID)
	if err != nil || deleted {
		t.Errorf("second delete = %v, %v", deleted, err)
	}

	missing, err := store.Tasks().GetDetail(ctx, task.ID)
	if err != nil || missing != nil {
		t.Errorf("deleted task detail = %+v, %v", missing, err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	project := models.NewProject("orphan", "", 12345)
	if err := store.Projects().Create(ctx, project); err == nil {
		t.Fatal("project with a missing creator should violate the foreign key")
	}
}
