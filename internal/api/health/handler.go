// Package health serves liveness and readiness probes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/logging"
	"github.com/good-yellow-bee/taskboard/pkg/config"
)

// checkTimeout bounds the whole readiness probe.
const checkTimeout = 5 * time.Second

// Checker is a dependency probed by Ready.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Handler serves /health, /health/live and /health/ready.
type Handler struct {
	mu       sync.RWMutex
	checkers []Checker
	logger   *zap.Logger
}

// NewHandler creates a health handler with no checkers.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{logger: logger}
}

// RegisterChecker adds a dependency to the readiness probe.
func (h *Handler) RegisterChecker(c Checker) {
	h.mu.Lock()
	h.checkers = append(h.checkers, c)
	h.mu.Unlock()
}

// HealthResponse is the body of every health endpoint.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Health reports that the process is up and which build it runs.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: config.Version})
}

// Live returns 200 while the process is serving requests.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "live"})
}

// Ready probes every checker in parallel and returns 503 if any fails.
// Failure messages are sanitized before they reach the client.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	h.mu.RLock()
	checkers := append([]Checker(nil), h.checkers...)
	h.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(checkers))
		healthy = true
	)
	for _, c := range checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			result := "ok"
			err := c.Check(ctx)
			if err != nil {
				result = logging.SanitizeError(err)
				h.logger.Warn("readiness check failed",
					zap.String("checker", c.Name()),
					zap.String("error", result))
			}
			mu.Lock()
			results[c.Name()] = result
			healthy = healthy && err == nil
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not_ready", Checks: results})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready", Checks: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
