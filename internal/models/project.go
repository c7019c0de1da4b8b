package models

import (
	"time"
)

// Project groups tasks and is owned by the user who created it.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a new Project with initialized timestamps.
func NewProject(name, description string, creatorID int64) *Project {
	now := time.Now().UTC()
	return &Project{
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ProjectMembership records that a user participates in a project.
// It is distinct from the project's creator.
type ProjectMembership struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProjectID int64     `json:"project_id"`
	JoinedAt  time.Time `json:"joined_at"`
}
