package auth

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/taskboard/internal/api/respond"
	"github.com/good-yellow-bee/taskboard/internal/apperrors"
	"github.com/good-yellow-bee/taskboard/internal/metrics"
	"github.com/good-yellow-bee/taskboard/internal/models"
	"github.com/good-yellow-bee/taskboard/internal/tracker"
)

// Accounts registers and authenticates users.
type Accounts interface {
	Register(ctx context.Context, in tracker.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, login, password string, requested []string) (*models.User, []string, error)
	ResolveLogin(ctx context.Context, login string) (*models.User, error)
}

// Handler handles authentication endpoints.
type Handler struct {
	accounts         Accounts
	tokens           *JWTService
	lockout          *LockoutTracker
	logger           *zap.Logger
	allowAdminSignup bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAdminSignup lets public registration create admin accounts.
func WithAdminSignup(allow bool) HandlerOption {
	return func(h *Handler) { h.allowAdminSignup = allow }
}

// NewHandler creates a new auth handler.
func NewHandler(accounts Accounts, tokens *JWTService, lockout *LockoutTracker, logger *zap.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		accounts: accounts,
		tokens:   tokens,
		lockout:  lockout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginRequest is the JSON request body for the token endpoint. Scope is
// space separated, as in the OAuth2 password grant.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Scope    string `json:"scope"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	Scope       []string `json:"scope"`
}

// Register creates an account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond.JSONError(w, respond.BadRequest("username, email and password required"))
		return
	}
	if req.IsAdmin && !h.allowAdminSignup {
		respond.JSONError(w, respond.Forbidden("admin accounts cannot be self-registered"))
		return
	}

	user, err := h.accounts.Register(r.Context(), tracker.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	metrics.RegistrationsTotal.Inc()
	respond.Created(w, user)
}

// Token authenticates a username or email with a password and issues an
// access token. It accepts a JSON body or an OAuth2 password form.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(r)
	if err != nil {
		respond.JSONError(w, respond.BadRequest("invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" {
		respond.JSONError(w, respond.BadRequest("username and password required"))
		return
	}

	key, err := h.lockoutSubject(r.Context(), req.Username)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if h.lockout.IsLocked(key) {
		h.logger.Warn("login blocked: account locked",
			zap.String("login", req.Username),
			zap.Duration("remaining", h.lockout.RemainingLockoutTime(key)))
		metrics.AuthLoginsTotal.WithLabelValues("locked").Inc()
		respond.JSONError(w, respond.ErrAccountLocked)
		return
	}

	user, scopes, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password, strings.Fields(req.Scope))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.lockout.RecordFailure(key)
			h.logger.Info("login failed", zap.String("login", req.Username))
			metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
		}
		respond.Error(w, r, h.logger, err)
		return
	}

	h.lockout.ClearFailures(key)

	token, err := h.tokens.IssueFor(user, scopes)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	respond.OK(w, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   h.tokens.TTLSeconds(),
		Scope:       scopes,
	})
}

// lockoutSubject names the lockout bucket for login. A login that resolves
// to an account shares that account's bucket whether it was given as the
// username or the email; unknown logins get their own.
func (h *Handler) lockoutSubject(ctx context.Context, login string) (string, error) {
	user, err := h.accounts.ResolveLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "login:" + login, nil
	}
	return "account:" + strconv.FormatInt(user.ID, 10), nil
}

// Logout acknowledges a logout. Tokens are not revoked server side; the
// client drops its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	respond.NoContent(w)
}

func decodeLogin(r *http.Request) (LoginRequest, error) {
	var req LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return req, err
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
		req.Scope = r.PostFormValue("scope")
	default:
		if err := respond.Decode(r, &req); err != nil {
			return req, err
		}
	}

	req.Username = strings.TrimSpace(req.Username)
	return req, nil
}
