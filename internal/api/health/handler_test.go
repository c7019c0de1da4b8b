package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func decode(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestHealthAndLive(t *testing.T) {
	h := NewHandler(zap.NewNop())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health: status %d", rec.Code)
	}
	if resp := decode(t, rec); resp.Status != "ok" || resp.Version == "" {
		t.Errorf("health: resp = %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest("GET", "/health/live", nil))
	if rec.Code != http.StatusOK || decode(t, rec).Status != "live" {
		t.Errorf("live: status %d", rec.Code)
	}
}

func TestReady(t *testing.T) {
	h := NewHandler(zap.NewNop())
	h.RegisterChecker(NewDBChecker("sqlite", stubPinger{}))

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest("GET", "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Status != "ready" || resp.Checks["sqlite"] != "ok" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestReady_Unhealthy(t *testing.T) {
	h := NewHandler(zap.NewNop())
	h.RegisterChecker(NewDBChecker("sqlite", stubPinger{}))
	h.RegisterChecker(NewDBChecker("postgres", stubPinger{
		err: errors.New("dial postgres://app:hunter2@db:5432/tasks: connection refused"),
	}))

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest("GET", "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Status != "not_ready" {
		t.Errorf("Status = %q, want not_ready", resp.Status)
	}
	if resp.Checks["sqlite"] != "ok" {
		t.Errorf("sqlite check = %q, want ok", resp.Checks["sqlite"])
	}
	if strings.Contains(resp.Checks["postgres"], "hunter2") {
		t.Errorf("password leaked: %q", resp.Checks["postgres"])
	}
}

func TestDBChecker_Nil(t *testing.T) {
	if err := NewDBChecker("db", nil).Check(context.Background()); err == nil {
		t.Error("expected error for nil database")
	}
}
