package storage

import (
	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// NewPostgresStorage creates a PostgreSQL storage for a libpq style DSN or
// postgres:// URL.
func NewPostgresStorage(dsn string, logger *zap.Logger) *SQLStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLStorage{
		driverName: "pgx",
		dsn:        dsn,
		dialect:    dialectPostgres,
		logger:     logger,
	}
}
