package models

import (
	"time"
)

// Scopes carried in access tokens.
const (
	ScopeAdmin = "admin"
	ScopeUser  = "user"
)

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a new User with an initialized timestamp.
func NewUser(username, email, passwordHash string, isAdmin bool) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
}

// Scopes returns the token scopes the user is entitled to.
func (u *User) Scopes() []string {
	if u.IsAdmin {
		return []string{ScopeUser, ScopeAdmin}
	}
	return []string{ScopeUser}
}
