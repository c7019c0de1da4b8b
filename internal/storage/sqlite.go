package storage

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
	// Pure Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

var sqlitePragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"busy_timeout(5000)",
}

// NewSQLiteStorage creates a new SQLite storage. path may be a file path,
// a file: URI, or ":memory:".
func NewSQLiteStorage(path string, logger *zap.Logger) *SQLStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLStorage{
		driverName: "sqlite",
		dsn:        sqliteDSN(path),
		dialect:    dialectSQLite,
		logger:     logger,
	}
}

// sqliteDSN appends the connection pragmas to path.
func sqliteDSN(path string) string {
	if path == ":memory:" {
		path = "file::memory:"
	} else if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	params := url.Values{}
	for _, p := range sqlitePragmas {
		params.Add("_pragma", p)
	}
	params.Set("_time_format", "sqlite")

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}
