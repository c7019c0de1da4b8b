// Package api provides the HTTP REST API server.
package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/auth"
	"github.com/good-yellow-bee/taskboard/internal/api/health"
	"github.com/good-yellow-bee/taskboard/internal/api/middleware"
	"github.com/good-yellow-bee/taskboard/internal/storage"
	"github.com/good-yellow-bee/taskboard/internal/tracker"
)

// Config contains HTTP API server configuration.
type Config struct {
	Address          string
	JWTSecret        []byte
	HTTPTLSEnabled   bool   // Enable HTTPS for API server
	HTTPTLSCertFile  string // HTTPS certificate file
	HTTPTLSKeyFile   string // HTTPS private key file
	TokenTTL         time.Duration
	BcryptCost       int
	RateLimitPerIP   int // requests per minute on public auth routes; < 0 disables
	RateLimitPerUser int // requests per minute per authenticated user; < 0 disables
	LockoutThreshold int
	LockoutDuration  time.Duration
	QueryTimeout     time.Duration // Timeout for storage-backed API calls
	AllowAdminSignup bool
	Verbose          bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 20 * time.Minute
	}
	if c.RateLimitPerIP == 0 {
		c.RateLimitPerIP = 10
	}
	if c.RateLimitPerUser == 0 {
		c.RateLimitPerUser = 300
	}
	if c.LockoutThreshold == 0 {
		c.LockoutThreshold = 5 // 5 failed attempts
	}
	if c.LockoutDuration == 0 {
		c.LockoutDuration = 15 * time.Minute
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = 10 * time.Second
	}
}

// Server is the HTTP API server.
type Server struct {
	config        *Config
	storage       storage.Storage
	logger        *zap.Logger
	tracker       *tracker.Service
	tokens        *auth.JWTService
	guard         *auth.Guard
	lockout       *auth.LockoutTracker
	ipLimiter     *middleware.RateLimiter
	userLimiter   *middleware.RateLimiter
	healthHandler *health.Handler
	server        *http.Server
}

// New creates a new API server.
func New(cfg *Config, store storage.Storage, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg.SetDefaults()

	tokens, err := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}

	s := &Server{
		config:        cfg,
		storage:       store,
		logger:        logger,
		tracker:       tracker.NewService(store, auth.NewPasswordHasher(cfg.BcryptCost), logger.Named("tracker")),
		tokens:        tokens,
		guard:         auth.NewGuard(tokens, store.Users()),
		lockout:       auth.NewLockoutTracker(cfg.LockoutThreshold, cfg.LockoutDuration),
		ipLimiter:     middleware.NewRateLimiter(cfg.RateLimitPerIP),
		userLimiter:   middleware.NewRateLimiter(cfg.RateLimitPerUser),
		healthHandler: health.NewHandler(logger),
	}
	if db := store.DB(); db != nil {
		s.healthHandler.RegisterChecker(health.NewDBChecker("database", db))
	}

	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.setupRouter(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.QueryTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if cfg.HTTPTLSEnabled {
		s.server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS13,
		}
	}

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.close()

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP API listening",
			zap.String("address", ln.Addr().String()),
			zap.Bool("tls", s.config.HTTPTLSEnabled))
		var err error
		if s.config.HTTPTLSEnabled {
			err = s.server.ServeTLS(ln, s.config.HTTPTLSCertFile, s.config.HTTPTLSKeyFile)
		} else {
			err = s.server.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func (s *Server) close() {
	s.lockout.Stop()
	s.ipLimiter.Stop()
	s.userLimiter.Stop()
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}

// RegisterHealthChecker adds a health checker to the server.
func (s *Server) RegisterHealthChecker(c health.Checker) {
	s.healthHandler.RegisterChecker(c)
}
