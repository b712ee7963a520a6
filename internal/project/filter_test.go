package project_test

import (
	"fmt"

	"github.com/frahmantamala/project-dashboard/internal/project"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// candidate builds a project that satisfies the predicates whose bit is set in
// mask: 1 search, 2 status, 4 employee, 8 priority.
func candidate(mask int) *project.Project {
	p := &project.Project{
		Title:             "Website",
		Description:       "landing pages",
		Status:            project.StatusOnHold,
		AssignedEmployees: []string{"e2"},
		Priority:          project.PriorityLow,
	}
	if mask&1 != 0 {
		p.Title = "Brand Refresh"
	}
	if mask&2 != 0 {
		p.Status = project.StatusActive
	}
	if mask&4 != 0 {
		p.AssignedEmployees = []string{"e2", "e1"}
	}
	if mask&8 != 0 {
		p.Priority = project.PriorityHigh
	}
	return p
}

var _ = Describe("Filter", func() {
	filter := project.Filter{Search: "brand", Status: "active", EmployeeID: "e1", Priority: "high"}

	Describe("Matches", func() {
		for mask := 0; mask < 16; mask++ {
			satisfied := 0
			for bit := 0; bit < 4; bit++ {
				if mask&(1<<bit) != 0 {
					satisfied++
				}
			}
			expected := mask == 15

			It(fmt.Sprintf("should return %t for predicate mask %04b (%d of 4 hold)", expected, mask, satisfied), func() {
				Expect(filter.Matches(candidate(mask))).To(Equal(expected))
			})
		}
	})

	It("should match the search against the description case-insensitively", func() {
		p := &project.Project{Title: "Website", Description: "Full BRAND overhaul", Status: project.StatusActive}
		Expect(project.Filter{Search: "Brand"}.Matches(p)).To(BeTrue())
	})

	It("should treat empty values as the all wildcard", func() {
		Expect(project.Filter{}.Normalize()).To(Equal(project.Filter{Status: project.All, EmployeeID: project.All, Priority: project.All}))
		Expect(project.Filter{}.Matches(candidate(0))).To(BeTrue())
	})

	It("should keep the input order and never return nil", func() {
		projects := []*project.Project{candidate(15), candidate(0), candidate(15)}
		projects[0].ID, projects[2].ID = "first", "second"

		out := project.FilterProjects(projects, filter)
		Expect(out).To(HaveLen(2))
		Expect(out[0].ID).To(Equal("first"))
		Expect(out[1].ID).To(Equal("second"))

		Expect(project.FilterProjects(nil, filter)).NotTo(BeNil())
	})
})
