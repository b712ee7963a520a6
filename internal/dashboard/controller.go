package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	apperrors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/stage"
	"github.com/frahmantamala/project-dashboard/internal/user"
	"github.com/frahmantamala/project-dashboard/pkg/logger"
)

// RecentProjectCount is how many projects the dashboard view lists.
const RecentProjectCount = 6

var (
	ErrManagerOnly = apperrors.ErrUnauthorizedAccess
	ErrNoFormOpen  = errors.New("no form open")
	ErrInvalidRole = errors.New("accounts can only be created for employees or clients")
)

type Option func(*Controller)

// WithOnProjectCreated registers a callback run after a new project is stored.
func WithOnProjectCreated(fn func(*project.Project)) Option {
	return func(c *Controller) {
		c.onProjectCreated = fn
	}
}

// Controller holds the dashboard's view, filter and modal state on top of a
// DataContext. Store calls run without the lock held.
type Controller struct {
	data      DataContext
	viewer    Viewer
	confirmer Confirmer
	logger    *slog.Logger

	onProjectCreated func(*project.Project)

	mu     sync.Mutex
	view   View
	filter project.Filter

	projectForm *ProjectForm

	detailID  string
	detailTab Tab

	leadModalOpen bool
	editingLeadID string
	leadForm      LeadForm
	leadPending   bool

	userRole    user.Role
	userForm    UserForm
	userPending bool
}

func NewController(data DataContext, viewer Viewer, confirmer Confirmer, lg *slog.Logger, opts ...Option) *Controller {
	if lg == nil {
		lg = logger.Discard()
	}
	c := &Controller{
		data:      data,
		viewer:    viewer,
		confirmer: confirmer,
		logger:    lg,
		view:      ViewDashboard,
		filter:    project.Filter{}.Normalize(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Viewer() Viewer {
	return c.viewer
}

// ----------------- VIEW & FILTERS -----------------

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetView switches the active view. Search and filter state carry over.
func (c *Controller) SetView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

func (c *Controller) Filter() project.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Search = term
}

func (c *Controller) SetStatusFilter(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Status = status
	c.filter = c.filter.Normalize()
}

func (c *Controller) SetEmployeeFilter(employeeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.EmployeeID = employeeID
	c.filter = c.filter.Normalize()
}

func (c *Controller) SetPriorityFilter(priority string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Priority = priority
	c.filter = c.filter.Normalize()
}

func (c *Controller) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = project.Filter{}.Normalize()
}

// FilteredProjects recomputes the project table from the current snapshot.
func (c *Controller) FilteredProjects() []*project.Project {
	return project.FilterProjects(c.data.Projects(), c.Filter())
}

// Stats summarises every project, ignoring filters.
func (c *Controller) Stats() project.Stats {
	return project.ComputeStats(c.data.Projects())
}

func (c *Controller) RecentProjects() []*project.Project {
	return project.RecentProjects(c.data.Projects(), RecentProjectCount)
}

func (c *Controller) Employees() []*user.User {
	return user.ByRole(c.data.Users(), user.RoleEmployee)
}

func (c *Controller) Clients() []*user.User {
	return user.ByRole(c.data.Users(), user.RoleClient)
}

func (c *Controller) Leads() []*lead.Lead {
	return c.data.Leads()
}

func (c *Controller) OpenTasks() []*stage.CommentTask {
	return stage.OpenTasks(c.data.CommentTasks())
}

// AssignedEmployeeNames resolves the project's employee ids to names, skipping
// ids with no matching user. A nil project has no names.
func (c *Controller) AssignedEmployeeNames(p *project.Project) []string {
	if p == nil {
		return []string{}
	}
	byID := make(map[string]string)
	for _, u := range c.data.Users() {
		byID[u.ID] = u.FullName
	}
	names := make([]string, 0, len(p.AssignedEmployees))
	for _, id := range p.AssignedEmployees {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// ----------------- PROJECT MODAL -----------------

func (c *Controller) CanCreateProject() bool {
	return c.viewer.IsManager()
}

// OpenProjectModal opens a blank project form. Only managers may create projects.
func (c *Controller) OpenProjectModal() (*ProjectForm, error) {
	if !c.viewer.IsManager() {
		return nil, ErrManagerOnly
	}
	form := NewProjectForm(nil, c.data.Users(), true)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectForm = form
	return form, nil
}

// EditProject opens the form seeded from the project with the given id.
func (c *Controller) EditProject(id string) (*ProjectForm, error) {
	if !c.viewer.IsManager() {
		return nil, ErrManagerOnly
	}
	p := c.findProject(id)
	if p == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	form := NewProjectForm(p, c.data.Users(), true)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectForm = form
	return form, nil
}

func (c *Controller) ProjectForm() *ProjectForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectForm
}

func (c *Controller) CloseProjectModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectForm = nil
}

// SubmitProject submits the open project form and closes it on success.
func (c *Controller) SubmitProject(ctx context.Context) Result {
	form := c.ProjectForm()
	if form == nil {
		return Failure(MsgNoFormOpen, ErrNoFormOpen)
	}

	res := form.Submit(logger.With(ctx, "viewer_id", c.viewer.UserID), c.data, c.onProjectCreated)
	if !res.OK {
		return res
	}

	c.mu.Lock()
	if c.projectForm == form {
		c.projectForm = nil
	}
	c.mu.Unlock()
	return res
}

func (c *Controller) findProject(id string) *project.Project {
	for _, p := range c.data.Projects() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ----------------- PROJECT DETAIL -----------------

// OpenProjectDetail enters detail mode for a project on the brochure tab.
func (c *Controller) OpenProjectDetail(id string) error {
	if c.findProject(id) == nil {
		return apperrors.ErrProjectNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailID = id
	c.detailTab = TabBrochure
	return nil
}

func (c *Controller) ShowingDetail() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailID != ""
}

func (c *Controller) DetailTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailTab
}

func (c *Controller) SetDetailTab(t Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detailID != "" {
		c.detailTab = t
	}
}

// CloseProjectDetail is the back action out of detail mode.
func (c *Controller) CloseProjectDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailID = ""
	c.detailTab = ""
}

// DetailProject returns the project in detail mode, or nil once it is gone
// from the snapshot.
func (c *Controller) DetailProject() *project.Project {
	c.mu.Lock()
	id := c.detailID
	c.mu.Unlock()
	if id == "" {
		return nil
	}
	return c.findProject(id)
}

func (c *Controller) DetailStages() []*stage.Stage {
	c.mu.Lock()
	id := c.detailID
	c.mu.Unlock()
	if id == "" {
		return nil
	}
	return stage.StagesForProject(c.data.Stages(), id)
}

// ----------------- LEADS -----------------

func (c *Controller) OpenLeadModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leadModalOpen = true
	c.editingLeadID = ""
	c.leadForm = LeadForm{}
}

// EditLead opens the lead form seeded from the lead with the given id.
func (c *Controller) EditLead(id string) error {
	for _, l := range c.data.Leads() {
		if l.ID == id {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.leadModalOpen = true
			c.editingLeadID = id
			c.leadForm = LeadFormFrom(l)
			return nil
		}
	}
	return apperrors.ErrLeadNotFound
}

func (c *Controller) LeadModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leadModalOpen
}

func (c *Controller) EditingLeadID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingLeadID
}

func (c *Controller) LeadForm() LeadForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leadForm
}

// EditLeadForm applies fn to the open lead form.
func (c *Controller) EditLeadForm(fn func(*LeadForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.leadForm)
}

func (c *Controller) CloseLeadModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLeadModal()
}

func (c *Controller) closeLeadModal() {
	c.leadModalOpen = false
	c.editingLeadID = ""
	c.leadForm = LeadForm{}
}

// SubmitLead creates a lead, or updates the one being edited. The modal
// stays open with its fields on failure.
func (c *Controller) SubmitLead(ctx context.Context) Result {
	c.mu.Lock()
	if !c.leadModalOpen {
		c.mu.Unlock()
		return Failure(MsgNoFormOpen, ErrNoFormOpen)
	}
	if c.leadPending {
		c.mu.Unlock()
		return Failure(MsgSubmissionPending, ErrSubmissionPending)
	}
	id, fields := c.editingLeadID, c.leadForm.Fields()
	c.leadPending = true
	c.mu.Unlock()

	var err error
	if id == "" {
		_, err = c.data.CreateLead(ctx, fields)
	} else {
		_, err = c.data.UpdateLead(ctx, id, fields)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.leadPending = false
	if err != nil {
		c.logger.Error("error saving lead", "lead_id", id, "error", err)
		return Failure(MsgLeadSaveFailed, err)
	}
	c.closeLeadModal()
	return Success(MsgLeadSaved)
}

// DeleteLead asks for confirmation and deletes only on an affirmative answer.
func (c *Controller) DeleteLead(ctx context.Context, id string) Result {
	if c.confirmer == nil || !c.confirmer.Confirm(MsgConfirmDeleteLead) {
		return Failure(MsgLeadDeleteCanceled, nil)
	}
	if err := c.data.DeleteLead(ctx, id); err != nil {
		c.logger.Error("error deleting lead", "lead_id", id, "error", err)
		return Failure(MsgLeadDeleteFailed, err)
	}
	return Success(MsgLeadDeleted)
}

// ----------------- USERS -----------------

// OpenUserModal opens account creation for role, which must be employee or client.
func (c *Controller) OpenUserModal(role user.Role) error {
	if !c.viewer.IsManager() {
		return ErrManagerOnly
	}
	if role != user.RoleEmployee && role != user.RoleClient {
		return ErrInvalidRole
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userRole = role
	c.userForm = UserForm{}
	return nil
}

// UserModalRole is the role the open user modal creates, or "" when closed.
func (c *Controller) UserModalRole() user.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userRole
}

func (c *Controller) UserForm() UserForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userForm
}

func (c *Controller) EditUserForm(fn func(*UserForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.userForm)
}

func (c *Controller) UserPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userPending
}

func (c *Controller) CloseUserModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userRole = ""
	c.userForm = UserForm{}
}

// SubmitUser creates the account, then closes the modal and reloads users.
func (c *Controller) SubmitUser(ctx context.Context) Result {
	c.mu.Lock()
	if c.userPending {
		c.mu.Unlock()
		return Failure(MsgSubmissionPending, ErrSubmissionPending)
	}
	req, ok := c.userForm.AccountRequest(c.userRole)
	if !ok {
		c.mu.Unlock()
		return Failure(MsgNoFormOpen, ErrNoFormOpen)
	}
	c.userPending = true
	c.mu.Unlock()

	_, err := c.data.CreateUserAccount(ctx, req)

	c.mu.Lock()
	c.userPending = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("error creating user", "role", req.Role(), "error", err)
		return Failure(MsgUserCreateFailed, err)
	}
	c.userRole = ""
	c.userForm = UserForm{}
	c.mu.Unlock()

	if err := c.data.RefreshUsers(ctx); err != nil {
		c.logger.Warn("error refreshing users", "error", err)
	}
	return Success(UserCreatedMessage(req.Role()))
}
