package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/auth"
	"github.com/good-yellow-bee/taskboard/internal/api/respond"
	"github.com/good-yellow-bee/taskboard/internal/metrics"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// Context keys for storing request-scoped values.
type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "request_id"
)

// Authenticator resolves a bearer token to the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

// BearerAuth returns middleware that requires a valid bearer token whose
// subject exists. A missing header is 401, a malformed one is 400.
func BearerAuth(authn Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ParseAuthorizationHeader(r.Header.Get("Authorization"))
			if err != nil {
				reject(w, r, logger, err)
				return
			}

			principal, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				reject(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScopes returns middleware that requires every listed scope.
// Failures are 403.
func RequireScopes(scopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authorize(GetPrincipal(r.Context()), scopes...); err != nil {
				reject(w, r, nil, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminOrSelf allows access if the caller holds the admin scope or
// the {id} URL parameter is their own user id.
func RequireAdminOrSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := GetPrincipal(r.Context())
		if principal == nil {
			reject(w, r, nil, auth.ErrInsufficientScope)
			return
		}

		if principal.HasScopes(models.ScopeAdmin) {
			next.ServeHTTP(w, r)
			return
		}

		resourceID := chi.URLParam(r, "id")
		if resourceID != "" && resourceID == strconv.FormatInt(principal.User.ID, 10) {
			next.ServeHTTP(w, r)
			return
		}

		reject(w, r, nil, auth.ErrInsufficientScope)
	})
}

// reject counts and writes an authentication or authorization failure.
func reject(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()

	var authErr *auth.Error
	if logger != nil && errors.As(err, &authErr) {
		logger.Debug("bearer auth rejected",
			zap.String("remote", r.RemoteAddr),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	respond.Error(w, r, logger, err)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "missing"
	case errors.Is(err, auth.ErrMalformedHeader):
		return "malformed"
	case errors.Is(err, auth.ErrExpired):
		return "expired"
	case errors.Is(err, auth.ErrInvalidSignature), errors.Is(err, auth.ErrInvalidClaims):
		return "invalid"
	case errors.Is(err, auth.ErrUnknownSubject):
		return "unknown_subject"
	case errors.Is(err, auth.ErrInsufficientScope):
		return "scope"
	default:
		return "error"
	}
}

// GetPrincipal returns the authenticated caller from context.
func GetPrincipal(ctx context.Context) *auth.Principal {
	if v := ctx.Value(principalKey); v != nil {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID from context, or 0.
func GetUserID(ctx context.Context) int64 {
	if p := GetPrincipal(ctx); p != nil && p.User != nil {
		return p.User.ID
	}
	return 0
}

// WithPrincipal returns a copy of ctx carrying p. Used by tests and by
// handlers mounted outside BearerAuth.
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
