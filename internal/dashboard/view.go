package dashboard

import "fmt"

type View string

const (
	ViewDashboard View = "dashboard"
	ViewProjects  View = "projects"
	ViewEmployees View = "employees"
	ViewLeads     View = "leads"
)

var views = []View{ViewDashboard, ViewProjects, ViewEmployees, ViewLeads}

func Views() []View {
	return append([]View{}, views...)
}

func ParseView(s string) (View, error) {
	for _, v := range views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Tab is a section of the project detail screen.
type Tab string

const (
	TabBrochure  Tab = "brochure"
	TabStages    Tab = "stages"
	TabTasks     Tab = "tasks"
	TabFiles     Tab = "files"
	TabComments  Tab = "comments"
	TabDocuments Tab = "documents"
)

var tabs = []Tab{TabBrochure, TabStages, TabTasks, TabFiles, TabComments, TabDocuments}

// Tabs returns the detail tabs in display order.
func Tabs() []Tab {
	return append([]Tab{}, tabs...)
}

func ParseTab(s string) (Tab, error) {
	for _, t := range tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}
