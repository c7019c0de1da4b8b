package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/good-yellow-bee/taskboard/internal/api/auth"
	"github.com/good-yellow-bee/taskboard/internal/api/catalog"
	"github.com/good-yellow-bee/taskboard/internal/api/middleware"
	"github.com/good-yellow-bee/taskboard/internal/api/projects"
	"github.com/good-yellow-bee/taskboard/internal/api/tasks"
	"github.com/good-yellow-bee/taskboard/internal/api/users"
	"github.com/good-yellow-bee/taskboard/internal/models"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestLogger(s.logger.Named("http"), s.config.Verbose))
	r.Use(middleware.Recoverer(s.logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(chimw.CleanPath)

	authHandler := auth.NewHandler(s.tracker, s.tokens, s.lockout, s.logger.Named("auth"),
		auth.WithAdminSignup(s.config.AllowAdminSignup))
	userHandler := users.NewHandler(s.tracker, s.logger)
	catalogHandler := catalog.NewHandler(s.tracker, s.logger)
	projectHandler := projects.NewHandler(s.tracker, s.logger)
	taskHandler := tasks.NewHandler(s.tracker, s.logger)

	requireUser := middleware.RequireScopes(models.ScopeUser)
	requireAdmin := middleware.RequireScopes(models.ScopeAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.QueryTimeout(s.config.QueryTimeout))

		// Public routes with IP rate limiting
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(s.ipLimiter))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/token", authHandler.Token)
		})

		// Everything else needs a bearer token with the user scope.
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(s.guard, s.logger.Named("auth")))
			r.Use(middleware.RateLimitByUser(s.userLimiter))
			r.Use(requireUser)

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/users", func(r chi.Router) {
				r.With(requireAdmin).Get("/", userHandler.List)
				r.Get("/me", userHandler.GetCurrentUser)
				r.Get("/me/projects", userHandler.ListMyProjects)
				r.Post("/profiles", userHandler.CreateProfile)
				r.With(middleware.RequireAdminOrSelf).Get("/{id}", userHandler.GetByID)
				r.Get("/{id}/profile", userHandler.GetProfile)
				r.Get("/{id}/projects", userHandler.ListProjects)
			})

			r.Get("/roles", catalogHandler.ListRoles)
			r.With(requireAdmin).Post("/roles", catalogHandler.CreateRole)
			r.Get("/technologies", catalogHandler.ListTechnologies)
			r.With(requireAdmin).Post("/technologies", catalogHandler.CreateTechnology)
			r.Get("/task-statuses", catalogHandler.ListTaskStatuses)
			r.With(requireAdmin).Post("/task-statuses", catalogHandler.CreateTaskStatus)

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", projectHandler.Create)
				r.Get("/created-by/{userId}", projectHandler.ListByCreator)
				r.Post("/members", projectHandler.AddMember)
				r.Get("/{id}/tasks", projectHandler.ListTasks)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.Create)
				r.Get("/{id}", taskHandler.Get)
				r.Patch("/{id}", taskHandler.Update)
				r.Delete("/{id}", taskHandler.Delete)
				r.Get("/{id}/owner", taskHandler.GetOwner)
				r.Get("/{id}/project", taskHandler.GetProject)
			})
		})
	})

	// Health checks (public, no rate limit)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	return r
}
