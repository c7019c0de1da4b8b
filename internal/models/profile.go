package models

import "time"

// UserProfile joins a user with exactly one role and one technology.
type UserProfile struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RoleID       int64     `json:"role_id"`
	TechnologyID int64     `json:"technology_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfileDetail is a profile with role and technology names resolved.
type UserProfileDetail struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	RoleName       string    `json:"role_name"`
	TechnologyName string    `json:"technology_name"`
}
