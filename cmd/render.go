package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/frahmantamala/project-dashboard/internal/dashboard"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/stage"
	"github.com/frahmantamala/project-dashboard/internal/user"
)

var (
	colorPrimary = lipgloss.Color("#101F38")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#6B7280")
	colorDanger  = lipgloss.Color("#DC2626")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 2).
			Width(18)
	cardValueStyle = lipgloss.NewStyle().Bold(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle        = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	failStyle      = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
)

var priorityStyles = map[project.Priority]lipgloss.Style{
	project.PriorityHigh:   lipgloss.NewStyle().Foreground(colorDanger),
	project.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706")),
	project.PriorityLow:    lipgloss.NewStyle().Foreground(colorMuted),
}

func renderTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func renderStats(w io.Writer, s project.Stats) {
	card := func(label string, value string) string {
		return cardStyle.Render(mutedStyle.Render(label) + "\n" + cardValueStyle.Render(value))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Projects", fmt.Sprint(s.Total)),
		card("Active", fmt.Sprint(s.Active)),
		card("Completed", fmt.Sprint(s.Completed)),
		card("Avg Progress", fmt.Sprintf("%d%%", s.AvgProgress)),
	))
}

// renderTable pads every column to its widest cell.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nothing to show"))
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if style != nil {
				padded = style.Render(padded)
			}
			parts[i] = padded
		}
		return strings.Join(parts, "  ")
	}

	fmt.Fprintln(w, line(headers, &headerStyle))
	for _, row := range rows {
		fmt.Fprintln(w, line(row, nil))
	}
}

func renderProjects(w io.Writer, projects []*project.Project, names func(*project.Project) []string) {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		team := strings.Join(names(p), ", ")
		if team == "" {
			team = "Unassigned"
		}
		priority := string(p.Priority)
		if style, ok := priorityStyles[p.Priority]; ok {
			priority = style.Render(priority)
		}
		rows = append(rows, []string{
			p.ID, p.Title, p.ClientName, project.FormatDeadline(p.Deadline),
			priority, string(p.Status), fmt.Sprintf("%d%%", p.ProgressPercentage), team,
		})
	}
	renderTable(w, []string{"ID", "TITLE", "CLIENT", "DEADLINE", "PRIORITY", "STATUS", "PROGRESS", "TEAM"}, rows)
}

func renderLeads(w io.Writer, leads []*lead.Lead) {
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{l.ID, l.Name, l.ContactInfo, fmt.Sprintf("%.2f", l.EstimatedAmount), l.Notes})
	}
	renderTable(w, []string{"ID", "NAME", "CONTACT", "ESTIMATED", "NOTES"}, rows)
}

func renderUsers(w io.Writer, users []*user.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.FullName, u.Email, string(u.Role)})
	}
	renderTable(w, []string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
}

func renderTasks(w io.Writer, tasks []*stage.CommentTask) {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.Title, string(t.Status), t.AssignedTo})
	}
	renderTable(w, []string{"TASK", "STATUS", "ASSIGNED TO"}, rows)
}

func renderTabs(w io.Writer, active dashboard.Tab) {
	parts := make([]string, 0, len(dashboard.Tabs()))
	for _, t := range dashboard.Tabs() {
		label := string(t)
		if t == active {
			label = activeTabStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}

func renderDetail(w io.Writer, ctrl *dashboard.Controller) {
	p := ctrl.DetailProject()
	if p == nil {
		fmt.Fprintln(w, mutedStyle.Render("Project not found"))
		return
	}

	renderTitle(w, p.Title)
	renderTabs(w, ctrl.DetailTab())
	fmt.Fprintln(w)

	switch ctrl.DetailTab() {
	case dashboard.TabBrochure:
		fmt.Fprintf(w, "%s\n\nClient:   %s\nDeadline: %s\nPriority: %s\nStatus:   %s\nProgress: %d%%\nTeam:     %s\n",
			p.Description, p.ClientName, project.FormatDeadline(p.Deadline), p.Priority, p.Status,
			p.ProgressPercentage, strings.Join(ctrl.AssignedEmployeeNames(p), ", "))
	case dashboard.TabStages:
		rows := [][]string{}
		for _, s := range ctrl.DetailStages() {
			rows = append(rows, []string{fmt.Sprint(s.Position), s.Name, s.Status})
		}
		renderTable(w, []string{"#", "STAGE", "STATUS"}, rows)
	case dashboard.TabTasks:
		var tasks []*stage.CommentTask
		for _, t := range ctrl.OpenTasks() {
			if t.ProjectID == p.ID {
				tasks = append(tasks, t)
			}
		}
		renderTasks(w, tasks)
	default:
		fmt.Fprintln(w, mutedStyle.Render("No "+string(ctrl.DetailTab())+" yet"))
	}
}

func renderResult(w io.Writer, res dashboard.Result) {
	if res.OK {
		fmt.Fprintln(w, okStyle.Render("✓ "+res.Message))
		return
	}
	fmt.Fprintln(w, failStyle.Render("✗ "+res.Message))
}
