package dashboard

import (
	"log/slog"
	"net/http"

	apperrors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/stage"
	"github.com/frahmantamala/project-dashboard/internal/transport"
	"github.com/frahmantamala/project-dashboard/internal/user"
	"github.com/frahmantamala/project-dashboard/pkg/logger"
	"github.com/go-chi/chi"
)

type OverviewResponse struct {
	Stats          project.Stats        `json:"stats"`
	RecentProjects []*project.Project   `json:"recent_projects"`
	OpenTasks      []*stage.CommentTask `json:"open_tasks"`
	Employees      int                  `json:"employee_count"`
	Clients        int                  `json:"client_count"`
	Leads          int                  `json:"lead_count"`
	PipelineValue  float64              `json:"pipeline_value"`
	CanCreate      bool                 `json:"can_create_project"`
}

type DetailResponse struct {
	Project       *project.Project `json:"project"`
	AssignedNames []string         `json:"assigned_employee_names"`
	Tabs          []Tab            `json:"tabs"`
	ActiveTab     Tab              `json:"active_tab"`
	Stages        []*stage.Stage   `json:"stages"`
}

// Handler serves read-only dashboard views built from the shared data context.
type Handler struct {
	*transport.BaseHandler
	Data DataContext
}

func NewHandler(data DataContext) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Data:        data,
	}
}

func (h *Handler) controllerFor(r *http.Request) (*Controller, bool) {
	p, ok := apperrors.PrincipalFromContext(r.Context())
	if !ok {
		return nil, false
	}
	viewer := Viewer{UserID: p.UserID, Role: user.Role(p.Role)}
	return NewController(h.Data, viewer, nil, h.Logger), true
}

// GetOverview handles GET /dashboard
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controllerFor(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	leads := ctrl.Leads()
	var pipeline float64
	for _, l := range leads {
		pipeline += l.EstimatedAmount
	}

	h.WriteJSON(w, http.StatusOK, OverviewResponse{
		Stats:          ctrl.Stats(),
		RecentProjects: ctrl.RecentProjects(),
		OpenTasks:      ctrl.OpenTasks(),
		Employees:      len(ctrl.Employees()),
		Clients:        len(ctrl.Clients()),
		Leads:          len(leads),
		PipelineValue:  pipeline,
		CanCreate:      ctrl.CanCreateProject(),
	})
}

// GetProjectDetail handles GET /dashboard/projects/{id}?tab=
func (h *Handler) GetProjectDetail(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controllerFor(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if err := ctrl.OpenProjectDetail(id); err != nil {
		h.Logger.Warn("GetProjectDetail: project not in snapshot", "project_id", id)
		h.HandleServiceError(w, err)
		return
	}

	if raw := r.URL.Query().Get("tab"); raw != "" {
		tab, err := ParseTab(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		ctrl.SetDetailTab(tab)
	}

	// a refresh may have dropped the project since it was opened
	p := ctrl.DetailProject()
	if p == nil {
		h.Logger.Warn("GetProjectDetail: project left the snapshot", "project_id", id)
		h.HandleServiceError(w, apperrors.ErrProjectNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, DetailResponse{
		Project:       p,
		AssignedNames: ctrl.AssignedEmployeeNames(p),
		Tabs:          Tabs(),
		ActiveTab:     ctrl.DetailTab(),
		Stages:        ctrl.DetailStages(),
	})
}
