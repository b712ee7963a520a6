package project

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/project-dashboard/internal/transport"
	"github.com/frahmantamala/project-dashboard/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, f Fields) (*Project, error)
	Update(ctx context.Context, id string, f Fields) (*Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListProjects handles GET /projects; stats describe the filtered set.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListProjects: failed to list projects", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	filtered := FilterProjects(projects, FilterFromQuery(r.URL.Query()))
	h.WriteJSON(w, http.StatusOK, ProjectsResponse{
		Projects: filtered,
		Stats:    ComputeStats(filtered),
	})
}

// GetProject handles GET /projects/{id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Logger.Warn("GetProject: lookup failed", "project_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// CreateProject handles POST /projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var f Fields
	if err := h.DecodeJSON(r, &f); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Create(r.Context(), f)
	if err != nil {
		h.Logger.Warn("CreateProject: create failed", "title", f.Title, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

// UpdateProject handles PUT /projects/{id}
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var f Fields
	if err := h.DecodeJSON(r, &f); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(r.Context(), id, f)
	if err != nil {
		h.Logger.Warn("UpdateProject: update failed", "project_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}
