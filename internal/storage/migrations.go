package storage

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies pending schema migrations.
func (s *SQLStorage) Migrate(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not open")
	}

	gooseDialect := goose.DialectSQLite3
	if s.dialect == dialectPostgres {
		gooseDialect = goose.DialectPostgres
	}

	fsys, err := fs.Sub(migrationsFS, "migrations/"+s.dialect.String())
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, s.db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Info("applied migration",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("duration", r.Duration))
	}
	return nil
}
