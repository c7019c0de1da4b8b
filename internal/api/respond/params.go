package respond

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PathID parses the chi URL parameter name as a positive int64 id.
func PathID(r *http.Request, name string) (int64, *APIError) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, BadRequest(fmt.Sprintf("%s required", name))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, BadRequest(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}
