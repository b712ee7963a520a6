package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/project-dashboard/api"
	"github.com/frahmantamala/project-dashboard/internal/auth"
	"github.com/frahmantamala/project-dashboard/internal/dashboard"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/transport/middleware"
	"github.com/frahmantamala/project-dashboard/internal/transport/swagger"
	"github.com/frahmantamala/project-dashboard/internal/user"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the per-module HTTP handlers. Nil handlers leave their
// routes unregistered.
type Handlers struct {
	Health    *HealthHandler
	Auth      *auth.Handler
	RBAC      *auth.RBACAuthorization
	User      *user.Handler
	Project   *project.Handler
	Lead      *lead.Handler
	Dashboard *dashboard.Handler
}

type Options struct {
	AllowedOrigins string
	MetricsEnabled bool
	MetricsPath    string
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	rbac := h.RBAC
	if rbac == nil {
		rbac = auth.NewRBACAuthorization(logger)
	}

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.Metrics)
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get(swagger.SpecURL, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.OpenAPISpec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, promhttp.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Auth == nil {
			return
		}

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Group(func(ur chi.Router) {
					ur.Use(rbac.RequireRole(string(user.RoleManager), string(user.RoleEmployee)))
					ur.Get("/users", h.User.ListUsers)
				})
				pr.With(rbac.RequireManager()).Post("/users", h.User.CreateUser)
			}

			if h.Project != nil {
				pr.Route("/projects", func(rr chi.Router) {
					rr.Get("/", h.Project.ListProjects)
					rr.Get("/{id}", h.Project.GetProject)

					rr.Group(func(mr chi.Router) {
						mr.Use(rbac.RequireManager())
						mr.Post("/", h.Project.CreateProject)
						mr.Put("/{id}", h.Project.UpdateProject)
					})
				})
			}

			if h.Lead != nil {
				pr.Route("/leads", func(rr chi.Router) {
					rr.Use(rbac.RequireManager())
					rr.Get("/", h.Lead.ListLeads)
					rr.Post("/", h.Lead.CreateLead)
					rr.Put("/{id}", h.Lead.UpdateLead)
					rr.Delete("/{id}", h.Lead.DeleteLead)
				})
			}

			if h.Dashboard != nil {
				pr.Get("/dashboard", h.Dashboard.GetOverview)
				pr.Get("/dashboard/projects/{id}", h.Dashboard.GetProjectDetail)
			}
		})
	})
}
