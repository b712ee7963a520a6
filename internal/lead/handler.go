package lead

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/transport"
	"github.com/frahmantamala/project-dashboard/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, f Fields) (*Lead, error)
	Update(ctx context.Context, id string, f Fields) (*Lead, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
}

type LeadsResponse struct {
	Leads []*Lead `json:"leads"`
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

func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListLeads: failed to list leads", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, LeadsResponse{Leads: leads})
}

func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var f Fields
	if err := h.DecodeJSON(r, &f); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.Create(r.Context(), f)
	if err != nil {
		h.Logger.Warn("CreateLead: create failed", "name", f.Name, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var f Fields
	if err := h.DecodeJSON(r, &f); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.Update(r.Context(), id, f)
	if err != nil {
		h.Logger.Warn("UpdateLead: update failed", "lead_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

// DeleteLead handles DELETE /leads/{id}?confirm=true. Without an affirmative
// confirm flag nothing is deleted.
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirmed {
		h.Logger.Info("DeleteLead: deletion not confirmed", "lead_id", id)
		h.WriteAppError(w, errors.ErrConfirmationRequired)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Warn("DeleteLead: delete failed", "lead_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
