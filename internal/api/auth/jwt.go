// Package auth provides authentication and authorization functionality.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/good-yellow-bee/taskboard/internal/models"
)

// MinSecretLength is the minimum signing secret size in bytes.
const MinSecretLength = 32

// Claims represents the JWT claims for access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64    `json:"id"`
	Scope  []string `json:"scope"`
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTService creates a new JWT service. The secret must be at least
// MinSecretLength bytes.
func NewJWTService(secret []byte, ttl time.Duration) (*JWTService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return &JWTService{
		secret: secret,
		ttl:    ttl,
		issuer: "taskboard",
		now:    time.Now,
	}, nil
}

// Issue signs a token for subject with the given scopes, valid for ttl.
func (s *JWTService) Issue(subject string, userID int64, scopes []string, ttl time.Duration) (string, error) {
	now := s.now()
	if scopes == nil {
		scopes = []string{}
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Scope:  scopes,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IssueFor signs a token for user with the service TTL.
func (s *JWTService) IssueFor(user *models.User, scopes []string) (string, error) {
	return s.Issue(user.Username, user.ID, scopes, s.ttl)
}

// Validate verifies the signature and expiry of tokenString and returns its
// claims. A token is expired at its expiration instant.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		// Malformed tokens, foreign algorithms and bad MACs all land here.
		return nil, ErrInvalidSignature
	}

	if claims.Issuer != s.issuer {
		return nil, ErrInvalidSignature
	}
	if claims.Subject == "" || claims.UserID == 0 || claims.ExpiresAt == nil {
		return nil, ErrInvalidClaims
	}
	if !s.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	return claims, nil
}

// TTL returns the token time-to-live duration.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// TTLSeconds returns the token TTL in seconds.
func (s *JWTService) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
