package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/user"
	"github.com/frahmantamala/project-dashboard/pkg/logger"
)

var ErrSubmissionPending = errors.New("submission already in progress")

// DefaultClient picks the first client-role user, or nil when there is none.
func DefaultClient(users []*user.User) *user.User {
	for _, u := range users {
		if u.Role == user.RoleClient {
			return u
		}
	}
	return nil
}

// ProjectForm holds the editable fields of one project, either a new one or an
// existing one being edited. It is safe for concurrent use.
type ProjectForm struct {
	mu sync.Mutex

	existing  *project.Project
	clients   []*user.User
	canAssign bool

	title       string
	description string
	clientID    string
	clientName  string
	deadline    string
	assigned    []string
	priority    project.Priority

	submitting bool
}

// NewProjectForm seeds the form from existing, or starts a blank form with
// priority medium and the default client selected.
func NewProjectForm(existing *project.Project, users []*user.User, canAssign bool) *ProjectForm {
	f := &ProjectForm{
		clients:   user.ByRole(users, user.RoleClient),
		canAssign: canAssign,
	}
	if existing != nil {
		f.existing = existing.Clone()
	}
	f.reset()
	return f
}

// Reset discards edits. Blank forms re-derive the default client here and
// nowhere else.
func (f *ProjectForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *ProjectForm) reset() {
	if f.existing != nil {
		p := f.existing
		f.title = p.Title
		f.description = p.Description
		f.clientID = p.ClientID
		f.clientName = p.ClientName
		f.deadline = project.FormatDeadline(p.Deadline)
		f.assigned = append([]string{}, p.AssignedEmployees...)
		f.priority = p.Priority
		return
	}

	f.title, f.description, f.deadline = "", "", ""
	f.clientID, f.clientName = "", ""
	f.assigned = []string{}
	f.priority = project.PriorityMedium
	if c := DefaultClient(f.clients); c != nil {
		f.clientID, f.clientName = c.ID, c.FullName
	}
}

func (f *ProjectForm) IsEditing() bool {
	return f.existing != nil
}

func (f *ProjectForm) CanAssign() bool {
	return f.canAssign
}

func (f *ProjectForm) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

func (f *ProjectForm) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.description = description
}

// SetDeadline takes a YYYY-MM-DD calendar date.
func (f *ProjectForm) SetDeadline(deadline string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadline = strings.TrimSpace(deadline)
}

func (f *ProjectForm) SetPriority(priority project.Priority) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priority = priority
}

// SelectClient sets the client id and copies the client's current name. Ids
// missing from the client list get an empty name.
func (f *ProjectForm) SelectClient(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clientID, f.clientName = id, ""
	for _, c := range f.clients {
		if c.ID == id {
			f.clientName = c.FullName
			return
		}
	}
}

func (f *ProjectForm) ClientID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clientID
}

// ToggleEmployee adds id when absent and removes it when present, keeping
// toggle order. Viewers who cannot assign employees change nothing.
func (f *ProjectForm) ToggleEmployee(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.canAssign {
		return
	}
	for i, e := range f.assigned {
		if e == id {
			f.assigned = append(f.assigned[:i:i], f.assigned[i+1:]...)
			return
		}
	}
	f.assigned = append(f.assigned, id)
}

func (f *ProjectForm) AssignedEmployees() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.assigned...)
}

func (f *ProjectForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// CanSubmit reports whether the submit control is enabled.
func (f *ProjectForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete() && !f.submitting
}

func (f *ProjectForm) complete() bool {
	return strings.TrimSpace(f.title) != "" && f.clientID != "" && f.deadline != ""
}

// Payload is what a submit would persist. Status and progress come from the
// edited project, or default to active and 0 for a new one.
func (f *ProjectForm) Payload() project.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payload()
}

func (f *ProjectForm) payload() project.Fields {
	out := project.Fields{
		Title:              f.title,
		Description:        f.description,
		ClientID:           f.clientID,
		ClientName:         f.clientName,
		Deadline:           f.deadline,
		AssignedEmployees:  append([]string{}, f.assigned...),
		Priority:           f.priority,
		Status:             project.StatusActive,
		ProgressPercentage: 0,
	}
	if f.existing != nil {
		out.Status = f.existing.Status
		out.ProgressPercentage = f.existing.ProgressPercentage
	}
	return out
}

// Submit updates the edited project, or creates a new one and then calls
// onCreated when it is non-nil. The form keeps its state on failure.
func (f *ProjectForm) Submit(ctx context.Context, w ProjectWriter, onCreated func(*project.Project)) Result {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Failure(MsgSubmissionPending, ErrSubmissionPending)
	}
	if !f.complete() {
		f.mu.Unlock()
		return Failure(MsgProjectIncomplete, nil)
	}
	payload := f.payload()
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	var err error
	if f.existing != nil {
		_, err = w.UpdateProject(ctx, f.existing.ID, payload)
	} else {
		var created *project.Project
		created, err = w.CreateProject(ctx, payload)
		if err == nil && onCreated != nil {
			onCreated(created)
		}
	}
	if err != nil {
		logger.From(ctx).Error("error saving project", "editing", f.existing != nil, "error", err)
		return Failure(MsgProjectSaveFailed, err)
	}
	return Success(MsgProjectSaved)
}
