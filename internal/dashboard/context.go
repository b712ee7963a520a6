package dashboard

import (
	"context"

	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/stage"
	"github.com/frahmantamala/project-dashboard/internal/user"
)

// ProjectWriter is the write half the project form needs.
type ProjectWriter interface {
	CreateProject(ctx context.Context, f project.Fields) (*project.Project, error)
	UpdateProject(ctx context.Context, id string, f project.Fields) (*project.Project, error)
}

// DataContext is the shared source of truth. Reads return ordered snapshots
// that callers may keep; writes go to the store and the implementation reloads
// the affected collection afterwards.
type DataContext interface {
	ProjectWriter

	Projects() []*project.Project
	Stages() []*stage.Stage
	CommentTasks() []*stage.CommentTask
	Leads() []*lead.Lead
	Users() []*user.User

	CreateLead(ctx context.Context, f lead.Fields) (*lead.Lead, error)
	UpdateLead(ctx context.Context, id string, f lead.Fields) (*lead.Lead, error)
	DeleteLead(ctx context.Context, id string) error
	CreateUserAccount(ctx context.Context, req user.AccountRequest) (*user.User, error)
	RefreshUsers(ctx context.Context) error
}

// Confirmer asks the person at the controls a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Viewer is the signed-in user driving the controller.
type Viewer struct {
	UserID string
	Role   user.Role
}

func (v Viewer) IsManager() bool {
	return v.Role == user.RoleManager
}
