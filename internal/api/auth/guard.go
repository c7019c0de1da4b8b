package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/good-yellow-bee/taskboard/internal/models"
)

// UserLookup resolves token subjects to stored users.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User   *models.User
	Scopes []string
}

// HasScopes reports whether the principal holds every required scope.
func (p *Principal) HasScopes(required ...string) bool {
	return HasScopes(p.Scopes, required...)
}

// Guard validates bearer tokens and resolves them to stored users.
type Guard struct {
	tokens *JWTService
	users  UserLookup
}

// NewGuard creates a guard over tokens and users.
func NewGuard(tokens *JWTService, users UserLookup) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate validates token and requires its subject to exist.
func (g *Guard) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := g.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}
	// A recreated account with the same username does not inherit old tokens.
	if user == nil || user.ID != claims.UserID {
		return nil, ErrUnknownSubject
	}

	return &Principal{User: user, Scopes: claims.Scope}, nil
}

// Authorize fails with ErrInsufficientScope unless p holds every required scope.
func Authorize(p *Principal, required ...string) error {
	if p == nil || !p.HasScopes(required...) {
		return ErrInsufficientScope
	}
	return nil
}

// HasScopes reports whether granted contains every required scope.
func HasScopes(granted []string, required ...string) bool {
	for _, r := range required {
		found := false
		for _, g := range granted {
			if g == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ParseAuthorizationHeader extracts the token from "Bearer <token>". The
// scheme is matched case-insensitively.
func ParseAuthorizationHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedHeader
	}
	return parts[1], nil
}
