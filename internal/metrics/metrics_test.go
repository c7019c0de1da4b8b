package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestServer_ExposesMetrics(t *testing.T) {
	TasksCreatedTotal.Inc()
	SetBuildInfo("test", "abc123", "now")

	srv := NewServer("127.0.0.1:0", zap.NewNop())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "taskboard_tasks_created_total")
	assert.Contains(t, rec.Body.String(), `taskboard_build_info{build_time="now",commit="abc123",version="test"} 1`)
}

func TestAuthLoginsTotal_Labels(t *testing.T) {
	AuthLoginsTotal.WithLabelValues("locked").Inc()

	srv := NewServer("127.0.0.1:0", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, rec.Body.String(), `taskboard_auth_logins_total{result="locked"}`)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv := NewServer("127.0.0.1:0", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
