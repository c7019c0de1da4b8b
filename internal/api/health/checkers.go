package health

import (
	"context"
	"fmt"
)

// Pinger is implemented by stores that can check their connection.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DBChecker checks relational store connectivity.
type DBChecker struct {
	name string
	db   Pinger
}

// NewDBChecker creates a database health checker reported under name.
func NewDBChecker(name string, db Pinger) *DBChecker {
	return &DBChecker{name: name, db: db}
}

// Name returns the checker name.
func (c *DBChecker) Name() string {
	return c.name
}

// Check verifies the database is accessible.
func (c *DBChecker) Check(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return c.db.PingContext(ctx)
}
