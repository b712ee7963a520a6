package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/transport"
)

// RBACAuthorization gates routes on the role carried by the request principal.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

// RequireRole lets the request through when the principal holds one of roles.
func (ra *RBACAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				ra.Logger.WarnContext(r.Context(), "authorization check failed: principal not found in context")
				ra.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.Logger.WarnContext(r.Context(), "access denied: role not permitted",
				"user_id", principal.UserID,
				"role", principal.Role,
				"required_roles", roles)
			ra.WriteAppError(w, internal.ErrUnauthorizedAccess)
		})
	}
}

func (ra *RBACAuthorization) RequireManager() func(http.Handler) http.Handler {
	return ra.RequireRole("manager")
}
