package models

// Role is a job role a user can be assigned through a profile.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Technology is a skill a user can be assigned through a profile.
type Technology struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskStatus is a workflow state a task can be in.
type TaskStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultTaskStatuses are seeded into an empty store.
var DefaultTaskStatuses = []string{"todo", "in_progress", "done"}
