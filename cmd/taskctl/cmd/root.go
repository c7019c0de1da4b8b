// Package cmd contains the CLI commands for taskctl.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/auth"
	"github.com/good-yellow-bee/taskboard/internal/logging"
	"github.com/good-yellow-bee/taskboard/internal/storage"
	"github.com/good-yellow-bee/taskboard/internal/tracker"
)

const defaultDSN = "data/taskboard.db"

var (
	// Used for flags
	verbose  bool
	output   string
	dbDriver string
	dbDSN    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskctl",
	Short: "Taskboard administration tool",
	Long: `taskctl manages a taskboard database directly, without going through
the HTTP API. It is intended for operators bootstrapping accounts and
catalogs.

Examples:
  # List all users
  taskctl user list

  # Create an administrator
  taskctl user create --username root --email root@example.com --admin

  # Seed the role catalog on a PostgreSQL database
  taskctl catalog add role Developer --driver postgres --dsn postgres://...`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", envOr("TASKBOARD_DB_DRIVER", storage.DriverSQLite), "database driver: sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "dsn", envOr("TASKBOARD_DB_DSN", defaultDSN), "database file path or connection URL")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// session bundles an open store and the tracker service on top of it.
type session struct {
	store   *storage.SQLStorage
	tracker *tracker.Service
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession opens and migrates the configured database.
func openSession(ctx context.Context) (*session, error) {
	if dbDriver == storage.DriverSQLite {
		if _, err := os.Stat(dbDSN); os.IsNotExist(err) {
			return nil, fmt.Errorf("database file not found: %s", dbDSN)
		}
	}

	logger := zap.NewNop()
	if verbose {
		l, err := logging.New(true)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		logger = l
	}

	store, err := storage.New(dbDriver, dbDSN, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Open(ctx); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &session{
		store:   store,
		tracker: tracker.NewService(store, auth.NewPasswordHasher(0), logger),
	}, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 30*time.Second)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
