package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/taskboard/internal/api"
	"github.com/good-yellow-bee/taskboard/internal/logging"
	"github.com/good-yellow-bee/taskboard/internal/metrics"
	"github.com/good-yellow-bee/taskboard/internal/storage"
	"github.com/good-yellow-bee/taskboard/pkg/config"
)

var (
	configFile string
	httpAddr   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "taskboard-server",
	Short: "Taskboard Server - project and task tracking API",
	Long: `Taskboard Server exposes the REST API for users, projects and tasks.
It requires TASKBOARD_JWT_SECRET to be set in the environment.`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskboard-server %s\n", config.Version)
		fmt.Printf("  commit: %s\n", config.Commit)
		fmt.Printf("  built:  %s\n", config.BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if httpAddr != "" {
		cfg.Server.HTTPAddress = httpAddr
	}
	cfg.Verbose = verbose

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	apiServer, err := api.New(&api.Config{
		Address:          cfg.Server.HTTPAddress,
		JWTSecret:        []byte(cfg.JWTSecret),
		HTTPTLSEnabled:   cfg.Server.TLS.Enabled,
		HTTPTLSCertFile:  cfg.Server.TLS.CertFile,
		HTTPTLSKeyFile:   cfg.Server.TLS.KeyFile,
		TokenTTL:         cfg.Auth.TokenTTL,
		BcryptCost:       cfg.Auth.BcryptCost,
		RateLimitPerIP:   cfg.Auth.RateLimitPerIP,
		RateLimitPerUser: cfg.Auth.RateLimitPerUser,
		LockoutThreshold: cfg.Auth.LockoutThreshold,
		LockoutDuration:  cfg.Auth.LockoutDuration,
		QueryTimeout:     cfg.Server.QueryTimeout,
		AllowAdminSignup: cfg.Auth.AllowAdminSignup,
		Verbose:          cfg.Verbose,
	}, store, logger.Named("api"))
	if err != nil {
		return fmt.Errorf("create api server: %w", err)
	}

	metrics.SetBuildInfo(config.Version, config.Commit, config.BuildTime)

	logger.Info("starting taskboard-server",
		zap.String("version", config.Version),
		zap.String("http_address", cfg.Server.HTTPAddress))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return apiServer.Run(gctx)
	})

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics.Address, logger.Named("metrics"))
		g.Go(func() error {
			return metricsServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// openStorage opens, migrates and seeds the configured database.
func openStorage(ctx context.Context, cfg *Config, logger *zap.Logger) (*storage.SQLStorage, error) {
	if cfg.Database.Driver == storage.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	store, err := storage.New(cfg.Database.Driver, cfg.Database.DSN, logger.Named("storage"))
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

	admin, err := store.EnsureAdminUser(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("ensure admin user: %w", err)
	}
	if admin != nil {
		// Printed once; the password is not stored in plain text anywhere.
		fmt.Fprintf(os.Stderr, "created admin user %q with password %q, change it after first login\n",
			admin.Username, admin.Password)
	}

	if err := store.EnsureDefaultStatuses(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("seed task statuses: %w", err)
	}

	return store, nil
}
