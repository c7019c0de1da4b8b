package projects

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/auth"
	"github.com/good-yellow-bee/taskboard/internal/api/middleware"
	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// Mock tracker
type mockService struct {
	users    map[int64]bool
	projects map[int64]*models.Project
	members  []*models.ProjectMembership
	nextID   int64
}

func newMockService() *mockService {
	return &mockService{
		users:    map[int64]bool{7: true, 8: true},
		projects: map[int64]*models.Project{},
		nextID:   1,
	}
}

func (m *mockService) CreateProject(_ context.Context, name, description string, creatorID int64) (*models.Project, error) {
	if !m.users[creatorID] {
		return nil, apperrors.NotFound(apperrors.KindUser)
	}
	p := models.NewProject(name, description, creatorID)
	p.ID = m.nextID
	m.nextID++
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockService) ListProjectsByCreator(_ context.Context, userID int64) ([]*models.Project, error) {
	if !m.users[userID] {
		return nil, apperrors.NotFound(apperrors.KindUser)
	}
	out := []*models.Project{}
	for _, p := range m.projects {
		if p.CreatorID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockService) AddProjectMember(_ context.Context, userID, projectID int64) (*models.ProjectMembership, error) {
	if !m.users[userID] {
		return nil, apperrors.NotFound(apperrors.KindUser)
	}
	if _, ok := m.projects[projectID]; !ok {
		return nil, apperrors.NotFound(apperrors.KindProject)
	}
	for _, mem := range m.members {
		if mem.UserID == userID && mem.ProjectID == projectID {
			return nil, apperrors.Conflict("membership")
		}
	}
	mem := &models.ProjectMembership{ID: int64(len(m.members) + 1), UserID: userID, ProjectID: projectID}
	m.members = append(m.members, mem)
	return mem, nil
}

func (m *mockService) ListProjectTasks(_ context.Context, projectID int64) ([]*models.Task, error) {
	if _, ok := m.projects[projectID]; !ok {
		return nil, apperrors.NotFound(apperrors.KindProject)
	}
	return []*models.Task{}, nil
}

func newRouter(svc Service) http.Handler {
	h := NewHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/projects", h.Create)
	r.Get("/projects/created-by/{userId}", h.ListByCreator)
	r.Post("/projects/members", h.AddMember)
	r.Get("/projects/{id}/tasks", h.ListTasks)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	principal := &auth.Principal{User: &models.User{ID: 7, Username: "alice"}, Scopes: []string{"user"}}
	req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	svc := newMockService()
	h := newRouter(svc)

	rec := do(t, h, "POST", "/projects", `{"name":"Apollo","description":"moon"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if got := svc.projects[1].CreatorID; got != 7 {
		t.Errorf("CreatorID = %d, want caller 7", got)
	}

	rec = do(t, h, "POST", "/projects", `{"name":"Gemini","creator_id":8}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got := svc.projects[2].CreatorID; got != 8 {
		t.Errorf("CreatorID = %d, want 8", got)
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"blank name", `{"name":"   "}`, http.StatusBadRequest},
		{"invalid json", `not json`, http.StatusBadRequest},
		{"unknown creator", `{"name":"x","creator_id":99}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(newMockService()), "POST", "/projects", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestListByCreator(t *testing.T) {
	svc := newMockService()
	h := newRouter(svc)
	do(t, h, "POST", "/projects", `{"name":"Apollo"}`)

	rec := do(t, h, "GET", "/projects/created-by/7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Apollo") {
		t.Errorf("body missing project: %s", rec.Body.String())
	}

	rec = do(t, h, "GET", "/projects/created-by/8", "")
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("empty list should encode as []: %s", rec.Body.String())
	}

	if rec := do(t, h, "GET", "/projects/created-by/99", ""); rec.Code != http.StatusNotFound {
		t.Errorf("absent user status = %d, want 404", rec.Code)
	}
}

func TestAddMember(t *testing.T) {
	svc := newMockService()
	h := newRouter(svc)
	do(t, h, "POST", "/projects", `{"name":"Apollo"}`)

	tests := []struct {
		name string
		body string
		want int
		code string
	}{
		{"joins", `{"user_id":8,"project_id":1}`, http.StatusCreated, ""},
		{"duplicate", `{"user_id":8,"project_id":1}`, http.StatusConflict, "CONFLICT"},
		{"user absent first", `{"user_id":99,"project_id":99}`, http.StatusNotFound, "NOT_FOUND"},
		{"project absent", `{"user_id":8,"project_id":99}`, http.StatusNotFound, "NOT_FOUND"},
		{"missing ids", `{}`, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, "POST", "/projects/members", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.code != "" && !strings.Contains(rec.Body.String(), tt.code) {
				t.Errorf("body = %s, want code %s", rec.Body.String(), tt.code)
			}
		})
	}

	rec := do(t, h, "POST", "/projects/members", `{"user_id":99,"project_id":99}`)
	if !strings.Contains(rec.Body.String(), "user not found") {
		t.Errorf("user should be checked before project: %s", rec.Body.String())
	}
}

func TestListTasks(t *testing.T) {
	svc := newMockService()
	h := newRouter(svc)
	do(t, h, "POST", "/projects", `{"name":"Apollo"}`)

	if rec := do(t, h, "GET", "/projects/1/tasks", ""); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec := do(t, h, "GET", "/projects/2/tasks", ""); rec.Code != http.StatusNotFound {
		t.Errorf("absent project status = %d, want 404", rec.Code)
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName(""); err == nil {
		t.Error("empty name should fail")
	}
	if err := ValidateName(" \t"); err == nil {
		t.Error("blank name should fail")
	}
	if err := ValidateName("ok"); err != nil {
		t.Errorf("valid name: %v", err)
	}
}
