package project

import "strings"

// All is the wildcard value for status, employee and priority filters.
const All = "all"

type Filter struct {
	Search     string `json:"search"`
	Status     string `json:"status"`
	EmployeeID string `json:"employee"`
	Priority   string `json:"priority"`
}

// Normalize maps empty dimension values to All.
func (f Filter) Normalize() Filter {
	if f.Status == "" {
		f.Status = All
	}
	if f.EmployeeID == "" {
		f.EmployeeID = All
	}
	if f.Priority == "" {
		f.Priority = All
	}
	return f
}

// Matches reports whether p satisfies all four predicates.
func (f Filter) Matches(p *Project) bool {
	f = f.Normalize()
	return f.matchesSearch(p) &&
		(f.Status == All || string(p.Status) == f.Status) &&
		(f.EmployeeID == All || p.IsAssigned(f.EmployeeID)) &&
		(f.Priority == All || string(p.Priority) == f.Priority)
}

func (f Filter) matchesSearch(p *Project) bool {
	needle := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

// FilterProjects returns the projects matching f in their original order.
func FilterProjects(projects []*Project, f Filter) []*Project {
	f = f.Normalize()
	out := make([]*Project, 0, len(projects))
	for _, p := range projects {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
