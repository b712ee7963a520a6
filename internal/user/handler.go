package user

import (
	"context"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/transport"
	"github.com/frahmantamala/project-dashboard/pkg/logger"
)

type ServiceAPI interface {
	CreateAccount(ctx context.Context, req AccountRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListByRole(ctx context.Context, role Role) ([]*User, error)
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

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := errors.PrincipalFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetCurrentUser: principal not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(r.Context(), principal.UserID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service GetByID failed", "user_id", principal.UserID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// ListUsers handles GET /users?role=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		users []*User
		err   error
	)

	if raw := r.URL.Query().Get("role"); raw != "" {
		role, perr := ParseRole(raw)
		if perr != nil {
			h.WriteAppError(w, errors.NewValidationFieldError("role", perr.Error(), errors.ErrCodeInvalidRole))
			return
		}
		users, err = h.Service.ListByRole(r.Context(), role)
	} else {
		users, err = h.Service.List(r.Context())
	}
	if err != nil {
		h.Logger.Error("ListUsers: failed to list users", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := req.ToAccountRequest()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	u, err := h.Service.CreateAccount(r.Context(), account)
	if err != nil {
		h.Logger.Warn("CreateUser: account creation failed", "email", req.Email, "role", req.Role, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateUser: account created", "user_id", u.ID, "role", u.Role)
	h.WriteJSON(w, http.StatusCreated, u)
}
