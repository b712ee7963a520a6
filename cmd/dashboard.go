package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/project-dashboard/internal/dashboard"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/user"
	"github.com/spf13/cobra"
)

var (
	dashboardAs  string
	assumeYes    bool
	showOpts     showOptions
	projectIn    projectInput
	leadIn       dashboard.LeadForm
	userIn       dashboard.UserForm
	userRole     string
	detailTabArg string
)

type showOptions struct {
	View     string
	Search   string
	Status   string
	Employee string
	Priority string
}

type projectInput struct {
	Title       string
	Description string
	Client      string
	Deadline    string
	Priority    string
	Employees   []string
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Work with the project dashboard from the terminal",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// usage is noise once the flags parsed
		cmd.SilenceUsage = true
	},
}

var dashboardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a dashboard view",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			if err := applyShowOptions(ctrl, showOpts); err != nil {
				return err
			}
			renderView(cmd.OutOrStdout(), ctrl)
			return nil
		})
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create, edit and inspect projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project (managers only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			return report(cmd.OutOrStdout(), createProject(ctx, ctrl, projectIn))
		})
	},
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a project (managers only); only the flags given are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			changed := func(name string) bool { return cmd.Flags().Changed(name) }
			return report(cmd.OutOrStdout(), editProject(ctx, ctrl, args[0], projectIn, changed))
		})
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project's detail screen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			if err := ctrl.OpenProjectDetail(args[0]); err != nil {
				return err
			}
			tab, err := dashboard.ParseTab(detailTabArg)
			if err != nil {
				return err
			}
			ctrl.SetDetailTab(tab)
			renderDetail(cmd.OutOrStdout(), ctrl)
			return nil
		})
	},
}

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Manage sales leads (managers only)",
}

var leadAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a lead",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			return report(cmd.OutOrStdout(), saveLead(ctx, ctrl, "", leadIn, nil))
		})
	},
}

var leadEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a lead; only the flags given are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			changed := func(name string) bool { return cmd.Flags().Changed(name) }
			return report(cmd.OutOrStdout(), saveLead(ctx, ctrl, args[0], leadIn, changed))
		})
	},
}

var leadDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a lead after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			return report(cmd.OutOrStdout(), deleteLead(ctx, ctrl, args[0]))
		})
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage employee and client accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an employee or client account (managers only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *dashboard.Controller) error {
			role, err := user.ParseRole(userRole)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), addUser(ctx, ctrl, role, userIn))
		})
	},
}

// withController loads the workspace, resolves the viewer from --as and hands
// a controller to fn.
func withController(cmd *cobra.Command, fn func(ctx context.Context, ctrl *dashboard.Controller) error) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.Workspace.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load workspace: %w", err)
	}

	viewer, err := viewerFor(a.Workspace.Users(), dashboardAs)
	if err != nil {
		return err
	}

	var confirmer dashboard.Confirmer = promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
	if assumeYes {
		confirmer = dashboard.ConfirmFunc(func(string) bool { return true })
	}

	ctrl := dashboard.NewController(a.Workspace, viewer, confirmer, a.Logger)
	return fn(ctx, ctrl)
}

func viewerFor(users []*user.User, email string) (dashboard.Viewer, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return dashboard.Viewer{}, fmt.Errorf("--as is required")
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return dashboard.Viewer{UserID: u.ID, Role: u.Role}, nil
		}
	}
	return dashboard.Viewer{}, fmt.Errorf("no user with email %q", email)
}

// promptConfirm asks on out and reads a y/N answer from in. Anything but
// y or yes declines.
func promptConfirm(in io.Reader, out io.Writer) dashboard.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

func report(w io.Writer, res dashboard.Result) error {
	renderResult(w, res)
	if !res.OK && res.Err != nil {
		return res.Err
	}
	return nil
}

func applyShowOptions(ctrl *dashboard.Controller, opts showOptions) error {
	view, err := dashboard.ParseView(opts.View)
	if err != nil {
		return err
	}
	ctrl.SetView(view)
	ctrl.SetSearch(opts.Search)
	ctrl.SetStatusFilter(opts.Status)
	ctrl.SetEmployeeFilter(opts.Employee)
	ctrl.SetPriorityFilter(opts.Priority)
	return nil
}

func renderView(w io.Writer, ctrl *dashboard.Controller) {
	switch ctrl.View() {
	case dashboard.ViewProjects:
		renderTitle(w, "Projects")
		renderProjects(w, ctrl.FilteredProjects(), ctrl.AssignedEmployeeNames)
	case dashboard.ViewEmployees:
		renderTitle(w, "Employees")
		renderUsers(w, ctrl.Employees())
		fmt.Fprintln(w)
		renderTitle(w, "Clients")
		renderUsers(w, ctrl.Clients())
	case dashboard.ViewLeads:
		renderTitle(w, "Leads")
		renderLeads(w, ctrl.Leads())
	default:
		renderTitle(w, "Dashboard")
		renderStats(w, ctrl.Stats())
		fmt.Fprintln(w)
		renderTitle(w, "Recent Projects")
		renderProjects(w, ctrl.RecentProjects(), ctrl.AssignedEmployeeNames)
		fmt.Fprintln(w)
		renderTitle(w, "Open Tasks")
		renderTasks(w, ctrl.OpenTasks())
	}
}

func fillProjectForm(form *dashboard.ProjectForm, in projectInput, changed func(string) bool) {
	set := func(name, value string) bool {
		if changed != nil {
			return changed(name)
		}
		return value != ""
	}
	if set("title", in.Title) {
		form.SetTitle(in.Title)
	}
	if set("description", in.Description) {
		form.SetDescription(in.Description)
	}
	if set("client", in.Client) {
		form.SelectClient(in.Client)
	}
	if set("deadline", in.Deadline) {
		form.SetDeadline(in.Deadline)
	}
	if set("priority", in.Priority) {
		form.SetPriority(project.Priority(in.Priority))
	}
	for _, id := range in.Employees {
		form.ToggleEmployee(id)
	}
}

func createProject(ctx context.Context, ctrl *dashboard.Controller, in projectInput) dashboard.Result {
	form, err := ctrl.OpenProjectModal()
	if err != nil {
		return dashboard.Failure(dashboard.MsgManagerOnly, err)
	}
	fillProjectForm(form, in, nil)
	return ctrl.SubmitProject(ctx)
}

// editProject reseeds the form from the stored project. --employee toggles
// each listed id against the current assignment.
func editProject(ctx context.Context, ctrl *dashboard.Controller, id string, in projectInput, changed func(string) bool) dashboard.Result {
	form, err := ctrl.EditProject(id)
	if err != nil {
		if ctrl.CanCreateProject() {
			return dashboard.Failure(dashboard.MsgProjectSaveFailed, err)
		}
		return dashboard.Failure(dashboard.MsgManagerOnly, err)
	}
	fillProjectForm(form, in, changed)
	return ctrl.SubmitProject(ctx)
}

// saveLead creates a lead when id is empty. On edit, changed selects which
// flags overwrite the stored values.
func saveLead(ctx context.Context, ctrl *dashboard.Controller, id string, in dashboard.LeadForm, changed func(string) bool) dashboard.Result {
	if !ctrl.Viewer().IsManager() {
		return dashboard.Failure(dashboard.MsgManagerOnly, dashboard.ErrManagerOnly)
	}

	if id == "" {
		ctrl.OpenLeadModal()
	} else if err := ctrl.EditLead(id); err != nil {
		return dashboard.Failure(dashboard.MsgLeadSaveFailed, err)
	}

	ctrl.EditLeadForm(func(f *dashboard.LeadForm) {
		if changed == nil || changed("name") {
			f.Name = in.Name
		}
		if changed == nil || changed("contact") {
			f.ContactInfo = in.ContactInfo
		}
		if changed == nil || changed("amount") {
			f.EstimatedAmount = in.EstimatedAmount
		}
		if changed == nil || changed("notes") {
			f.Notes = in.Notes
		}
	})
	return ctrl.SubmitLead(ctx)
}

func deleteLead(ctx context.Context, ctrl *dashboard.Controller, id string) dashboard.Result {
	if !ctrl.Viewer().IsManager() {
		return dashboard.Failure(dashboard.MsgManagerOnly, dashboard.ErrManagerOnly)
	}
	return ctrl.DeleteLead(ctx, id)
}

func addUser(ctx context.Context, ctrl *dashboard.Controller, role user.Role, in dashboard.UserForm) dashboard.Result {
	if err := ctrl.OpenUserModal(role); err != nil {
		if ctrl.Viewer().IsManager() {
			return dashboard.Failure(dashboard.MsgUserCreateFailed, err)
		}
		return dashboard.Failure(dashboard.MsgManagerOnly, err)
	}
	ctrl.EditUserForm(func(f *dashboard.UserForm) {
		*f = in
	})
	return ctrl.SubmitUser(ctx)
}

func init() {
	dashboardCmd.PersistentFlags().StringVar(&dashboardAs, "as", "", "email of the user driving the dashboard")

	f := dashboardShowCmd.Flags()
	f.StringVar(&showOpts.View, "view", string(dashboard.ViewDashboard), "dashboard, projects, employees or leads")
	f.StringVar(&showOpts.Search, "search", "", "case-insensitive match on title, description or client")
	f.StringVar(&showOpts.Status, "status", project.All, "project status filter")
	f.StringVar(&showOpts.Employee, "employee", project.All, "assigned employee id filter")
	f.StringVar(&showOpts.Priority, "priority", project.All, "project priority filter")

	for _, c := range []*cobra.Command{projectCreateCmd, projectEditCmd} {
		pf := c.Flags()
		pf.StringVar(&projectIn.Title, "title", "", "project title")
		pf.StringVar(&projectIn.Description, "description", "", "project description")
		pf.StringVar(&projectIn.Client, "client", "", "client user id")
		pf.StringVar(&projectIn.Deadline, "deadline", "", "deadline as YYYY-MM-DD")
		pf.StringVar(&projectIn.Priority, "priority", "", "low, medium or high")
		pf.StringSliceVar(&projectIn.Employees, "employee", nil, "employee id to toggle; repeatable")
	}
	projectShowCmd.Flags().StringVar(&detailTabArg, "tab", string(dashboard.TabBrochure), "detail tab to show")

	for _, c := range []*cobra.Command{leadAddCmd, leadEditCmd} {
		lf := c.Flags()
		lf.StringVar(&leadIn.Name, "name", "", "lead name")
		lf.StringVar(&leadIn.ContactInfo, "contact", "", "contact details")
		lf.Float64Var(&leadIn.EstimatedAmount, "amount", 0, "estimated deal amount")
		lf.StringVar(&leadIn.Notes, "notes", "", "free-form notes")
	}
	leadDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")

	uf := userAddCmd.Flags()
	uf.StringVar(&userRole, "role", string(user.RoleEmployee), "employee or client")
	uf.StringVar(&userIn.FullName, "name", "", "full name")
	uf.StringVar(&userIn.Email, "email", "", "email address")
	uf.StringVar(&userIn.Password, "password", "", "initial password")

	projectCmd.AddCommand(projectCreateCmd, projectEditCmd, projectShowCmd)
	leadCmd.AddCommand(leadAddCmd, leadEditCmd, leadDeleteCmd)
	userCmd.AddCommand(userAddCmd)
	dashboardCmd.AddCommand(dashboardShowCmd, projectCmd, leadCmd, userCmd)
}
