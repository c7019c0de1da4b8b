package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/models"
)

type mockService struct {
	roles    []*models.Role
	techs    []*models.Technology
	statuses []*models.TaskStatus
	err      error
}

func (m *mockService) CreateRole(_ context.Context, name string) (*models.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	r := &models.Role{ID: int64(len(m.roles) + 1), Name: name}
	m.roles = append(m.roles, r)
	return r, nil
}

func (m *mockService) ListRoles(context.Context) ([]*models.Role, error) {
	return m.roles, m.err
}

func (m *mockService) CreateTechnology(_ context.Context, name string) (*models.Technology, error) {
	t := &models.Technology{ID: int64(len(m.techs) + 1), Name: name}
	m.techs = append(m.techs, t)
	return t, nil
}

func (m *mockService) ListTechnologies(context.Context) ([]*models.Technology, error) {
	return m.techs, nil
}

func (m *mockService) CreateTaskStatus(_ context.Context, name string) (*models.TaskStatus, error) {
	s := &models.TaskStatus{ID: int64(len(m.statuses) + 1), Name: name}
	m.statuses = append(m.statuses, s)
	return s, nil
}

func (m *mockService) ListTaskStatuses(context.Context) ([]*models.TaskStatus, error) {
	return m.statuses, nil
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func get(h http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/", nil))
	return rec
}

func TestCreateAndList(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, zap.NewNop())

	tests := []struct {
		name   string
		create http.HandlerFunc
		list   http.HandlerFunc
	}{
		{"roles", h.CreateRole, h.ListRoles},
		{"technologies", h.CreateTechnology, h.ListTechnologies},
		{"task statuses", h.CreateTaskStatus, h.ListTaskStatuses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(tt.create, `{"name":"  backend  "}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("create status = %d, want 201", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"name":"backend"`) {
				t.Errorf("create body = %s, want trimmed name", rec.Body.String())
			}

			// Names are not unique.
			if rec := post(tt.create, `{"name":"backend"}`); rec.Code != http.StatusCreated {
				t.Errorf("duplicate create status = %d, want 201", rec.Code)
			}

			rec = get(tt.list)
			if rec.Code != http.StatusOK {
				t.Fatalf("list status = %d, want 200", rec.Code)
			}
			if got := strings.Count(rec.Body.String(), `"backend"`); got != 2 {
				t.Errorf("list has %d entries, want 2: %s", got, rec.Body.String())
			}
		})
	}
}

func TestCreate_Rejects(t *testing.T) {
	h := NewHandler(&mockService{}, zap.NewNop())

	if rec := post(h.CreateRole, `{"name":""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty name status = %d, want 400", rec.Code)
	}
	if rec := post(h.CreateRole, `{"title":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d, want 400", rec.Code)
	}
}

func TestStoreFailure(t *testing.T) {
	h := NewHandler(&mockService{err: errors.New("connection refused")}, zap.NewNop())

	rec := get(h.ListRoles)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("internal error leaked to client")
	}
}
