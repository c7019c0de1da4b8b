package models

import "time"

// Task is a unit of work inside a project.
type Task struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StatusID    int64     `json:"status_id"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task with initialized timestamps.
func NewTask(projectID int64, name, description string, ownerID, statusID int64) *Task {
	now := time.Now().UTC()
	return &Task{
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		StatusID:    statusID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TaskDetail is a task with project and status names resolved.
type TaskDetail struct {
	TaskID             int64  `json:"task_id"`
	TaskName           string `json:"task_name"`
	TaskDescription    string `json:"task_description"`
	ProjectName        string `json:"project_name"`
	ProjectDescription string `json:"project_description"`
	StatusName         string `json:"status_name"`
}

// TaskOwnerDetail is a task with its owner's identity.
type TaskOwnerDetail struct {
	TaskID          int64  `json:"task_id"`
	TaskName        string `json:"task_name"`
	TaskDescription string `json:"task_description"`
	OwnerUsername   string `json:"task_owner_username"`
	OwnerEmail      string `json:"task_owner_email"`
}

// TaskProjectDetail is a task with the project it belongs to.
type TaskProjectDetail struct {
	TaskID             int64  `json:"task_id"`
	TaskName           string `json:"task_name"`
	TaskDescription    string `json:"task_description"`
	ProjectID          int64  `json:"project_id"`
	ProjectName        string `json:"project_name"`
	ProjectDescription string `json:"project_description"`
}

// TaskPatch holds the fields of a task that may be changed.
// Nil fields are left untouched.
type TaskPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	StatusID    *int64  `json:"status_id,omitempty"`
}

// Apply copies the set fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.StatusID != nil {
		t.StatusID = *p.StatusID
	}
}
