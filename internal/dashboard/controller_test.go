package dashboard_test

import (
	"context"

	"github.com/frahmantamala/project-dashboard/internal/dashboard"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/stage"
	"github.com/frahmantamala/project-dashboard/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var (
		ctx     context.Context
		data    *fakeData
		answer  bool
		prompts []string
		ctrl    *dashboard.Controller
	)

	manager := dashboard.Viewer{UserID: "m1", Role: user.RoleManager}

	BeforeEach(func() {
		ctx = context.Background()
		answer = false
		prompts = nil
		data = &fakeData{
			users: sampleUsers(),
			projects: []*project.Project{
				redesignProject(),
				{ID: "p2", Title: "Mobile app", Description: "iOS build", Status: project.StatusActive,
					Priority: project.PriorityHigh, AssignedEmployees: []string{"e1"}, ProgressPercentage: 75},
				{ID: "p3", Title: "Audit", Status: project.StatusCompleted,
					Priority: project.PriorityLow, AssignedEmployees: []string{"e2", "ghost"}, ProgressPercentage: 100},
			},
			leads: []*lead.Lead{
				{ID: "l1", Name: "Acme", ContactInfo: "a@acme.com", EstimatedAmount: 5000, Notes: ""},
			},
			stages: []*stage.Stage{
				{ID: "s2", ProjectID: "p1", Name: "Build", Position: 2},
				{ID: "s1", ProjectID: "p1", Name: "Design", Position: 1},
				{ID: "s3", ProjectID: "p2", Name: "Kickoff", Position: 1},
			},
			tasks: []*stage.CommentTask{
				{ID: "t1", ProjectID: "p1", Title: "Review", Status: stage.TaskTodo},
				{ID: "t2", ProjectID: "p1", Title: "Ship", Status: stage.TaskDone},
			},
		}
		confirmer := dashboard.ConfirmFunc(func(prompt string) bool {
			prompts = append(prompts, prompt)
			return answer
		})
		ctrl = dashboard.NewController(data, manager, confirmer, nil)
	})

	Describe("views and filters", func() {
		It("starts on the dashboard with every filter set to all", func() {
			Expect(ctrl.View()).To(Equal(dashboard.ViewDashboard))
			Expect(ctrl.Filter()).To(Equal(project.Filter{Status: project.All, EmployeeID: project.All, Priority: project.All}))
			Expect(ctrl.FilteredProjects()).To(HaveLen(3))
		})

		It("keeps search and filters across view switches", func() {
			ctrl.SetSearch("mobile")
			ctrl.SetPriorityFilter("high")

			for _, v := range dashboard.Views() {
				ctrl.SetView(v)
				Expect(ctrl.View()).To(Equal(v))
				Expect(ctrl.Filter().Search).To(Equal("mobile"))
				Expect(ctrl.Filter().Priority).To(Equal("high"))
			}

			filtered := ctrl.FilteredProjects()
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].ID).To(Equal("p2"))
		})

		It("combines all four predicates", func() {
			ctrl.SetStatusFilter("active")
			ctrl.SetEmployeeFilter("e1")
			Expect(ctrl.FilteredProjects()).To(HaveLen(1))

			ctrl.SetSearch("audit")
			Expect(ctrl.FilteredProjects()).To(BeEmpty())

			ctrl.ResetFilters()
			ctrl.SetSearch("audit")
			Expect(ctrl.FilteredProjects()).To(HaveLen(1))
		})

		It("computes stats over all projects regardless of filters", func() {
			ctrl.SetStatusFilter("completed")
			stats := ctrl.Stats()
			Expect(stats.Total).To(Equal(3))
			Expect(stats.Active).To(Equal(1))
			Expect(stats.Completed).To(Equal(1))
			Expect(stats.AvgProgress).To(Equal(72))
		})

		It("resolves assigned employee names and skips unknown ids", func() {
			Expect(ctrl.AssignedEmployeeNames(data.projects[2])).To(Equal([]string{"Erin Employee"}))
		})

		It("has no assigned names for a missing project", func() {
			Expect(ctrl.AssignedEmployeeNames(nil)).To(BeEmpty())
		})

		It("lists people by role and open tasks", func() {
			Expect(ctrl.Employees()).To(HaveLen(2))
			Expect(ctrl.Clients()).To(HaveLen(2))
			Expect(ctrl.OpenTasks()).To(HaveLen(1))
		})
	})

	Describe("project detail", func() {
		It("opens on the brochure tab and exits only on back", func() {
			Expect(ctrl.OpenProjectDetail("p1")).To(Succeed())
			Expect(ctrl.ShowingDetail()).To(BeTrue())
			Expect(ctrl.DetailTab()).To(Equal(dashboard.TabBrochure))
			Expect(dashboard.Tabs()[0]).To(Equal(dashboard.TabBrochure))

			ctrl.SetDetailTab(dashboard.TabStages)
			ctrl.SetView(dashboard.ViewProjects)
			Expect(ctrl.ShowingDetail()).To(BeTrue())
			Expect(ctrl.DetailTab()).To(Equal(dashboard.TabStages))

			stages := ctrl.DetailStages()
			Expect(stages).To(HaveLen(2))
			Expect(stages[0].Name).To(Equal("Design"))

			ctrl.CloseProjectDetail()
			Expect(ctrl.ShowingDetail()).To(BeFalse())
			Expect(ctrl.DetailProject()).To(BeNil())
		})

		It("rejects unknown projects", func() {
			Expect(ctrl.OpenProjectDetail("missing")).NotTo(Succeed())
			Expect(ctrl.ShowingDetail()).To(BeFalse())
		})
	})

	Describe("project modal", func() {
		It("is manager only", func() {
			employee := dashboard.NewController(data, dashboard.Viewer{UserID: "e1", Role: user.RoleEmployee}, nil, nil)
			Expect(employee.CanCreateProject()).To(BeFalse())
			_, err := employee.OpenProjectModal()
			Expect(err).To(MatchError(dashboard.ErrManagerOnly))
		})

		It("closes after a successful create and runs the hook", func() {
			var created []*project.Project
			ctrl = dashboard.NewController(data, manager, nil, nil,
				dashboard.WithOnProjectCreated(func(p *project.Project) { created = append(created, p) }))

			form, err := ctrl.OpenProjectModal()
			Expect(err).NotTo(HaveOccurred())
			form.SetTitle("Website")
			form.SetDeadline("2024-09-30")

			res := ctrl.SubmitProject(ctx)
			Expect(res.OK).To(BeTrue())
			Expect(ctrl.ProjectForm()).To(BeNil())
			Expect(created).To(HaveLen(1))
		})

		It("stays open when the save fails", func() {
			form, err := ctrl.EditProject("p1")
			Expect(err).NotTo(HaveOccurred())
			data.SetShouldFail(true)

			res := ctrl.SubmitProject(ctx)
			Expect(res.OK).To(BeFalse())
			Expect(res.Message).To(Equal(dashboard.MsgProjectSaveFailed))
			Expect(ctrl.ProjectForm()).To(BeIdenticalTo(form))
		})

		It("fails without an open form", func() {
			Expect(ctrl.SubmitProject(ctx).Err).To(MatchError(dashboard.ErrNoFormOpen))
		})
	})

	Describe("leads", func() {
		It("creates when no lead is being edited", func() {
			ctrl.OpenLeadModal()
			ctrl.EditLeadForm(func(f *dashboard.LeadForm) {
				f.Name = "Initech"
				f.EstimatedAmount = 1200
			})

			res := ctrl.SubmitLead(ctx)
			Expect(res.OK).To(BeTrue())
			Expect(data.leadCreates).To(Equal([]lead.Fields{{Name: "Initech", EstimatedAmount: 1200}}))
			Expect(data.leadUpdates).To(BeEmpty())
			Expect(ctrl.LeadModalOpen()).To(BeFalse())
		})

		It("updates only the changed field of the edited lead", func() {
			Expect(ctrl.EditLead("l1")).To(Succeed())
			ctrl.EditLeadForm(func(f *dashboard.LeadForm) { f.EstimatedAmount = 6000 })

			res := ctrl.SubmitLead(ctx)
			Expect(res.OK).To(BeTrue())
			Expect(data.leadCreates).To(BeEmpty())
			Expect(data.leadUpdates).To(Equal([]leadUpdate{{
				ID: "l1",
				Fields: lead.Fields{
					Name:            "Acme",
					ContactInfo:     "a@acme.com",
					EstimatedAmount: 6000,
					Notes:           "",
				},
			}}))
		})

		It("keeps the modal and fields when saving fails", func() {
			Expect(ctrl.EditLead("l1")).To(Succeed())
			ctrl.EditLeadForm(func(f *dashboard.LeadForm) { f.Notes = "call back" })
			data.SetShouldFail(true)

			res := ctrl.SubmitLead(ctx)
			Expect(res.OK).To(BeFalse())
			Expect(res.Message).To(Equal(dashboard.MsgLeadSaveFailed))
			Expect(ctrl.LeadModalOpen()).To(BeTrue())
			Expect(ctrl.EditingLeadID()).To(Equal("l1"))
			Expect(ctrl.LeadForm().Notes).To(Equal("call back"))
		})

		It("deletes only after an affirmative confirmation", func() {
			answer = true
			res := ctrl.DeleteLead(ctx, "l1")

			Expect(res.OK).To(BeTrue())
			Expect(prompts).To(Equal([]string{dashboard.MsgConfirmDeleteLead}))
			Expect(data.leadDeletes).To(Equal([]string{"l1"}))
		})

		It("makes no delete call when confirmation is refused", func() {
			answer = false
			res := ctrl.DeleteLead(ctx, "l1")

			Expect(res.OK).To(BeFalse())
			Expect(res.Message).To(Equal(dashboard.MsgLeadDeleteCanceled))
			Expect(prompts).To(HaveLen(1))
			Expect(data.leadDeletes).To(BeEmpty())
		})

		It("makes no delete call without a confirmer", func() {
			ctrl = dashboard.NewController(data, manager, nil, nil)
			Expect(ctrl.DeleteLead(ctx, "l1").OK).To(BeFalse())
			Expect(data.leadDeletes).To(BeEmpty())
		})

		It("reports a failed delete", func() {
			answer = true
			data.SetShouldFail(true)
			res := ctrl.DeleteLead(ctx, "l1")
			Expect(res.Message).To(Equal(dashboard.MsgLeadDeleteFailed))
			Expect(data.leadDeletes).To(HaveLen(1))
		})
	})

	Describe("user creation", func() {
		fill := func(f *dashboard.UserForm) {
			f.FullName = "Nora New"
			f.Email = "nora@example.com"
			f.Password = "s3cret-pass"
		}

		It("tags the request with the role that opened the modal", func() {
			Expect(ctrl.OpenUserModal(user.RoleClient)).To(Succeed())
			ctrl.EditUserForm(fill)

			res := ctrl.SubmitUser(ctx)
			Expect(res.OK).To(BeTrue())
			Expect(res.Message).To(Equal(dashboard.MsgClientCreated))
			Expect(data.accounts).To(HaveLen(1))
			Expect(data.accounts[0].Role()).To(Equal(user.RoleClient))
			Expect(data.accounts[0].Email).To(Equal("nora@example.com"))
			Expect(data.userRefreshes).To(Equal(1))
			Expect(ctrl.UserModalRole()).To(BeEmpty())
			Expect(ctrl.UserForm()).To(Equal(dashboard.UserForm{}))
		})

		It("names the employee role in the success message", func() {
			Expect(ctrl.OpenUserModal(user.RoleEmployee)).To(Succeed())
			ctrl.EditUserForm(fill)

			res := ctrl.SubmitUser(ctx)
			Expect(res.OK).To(BeTrue())
			Expect(res.Message).To(Equal(dashboard.MsgEmployeeCreated))
		})

		It("refuses manager accounts", func() {
			Expect(ctrl.OpenUserModal(user.RoleManager)).To(MatchError(dashboard.ErrInvalidRole))
		})

		It("returns a generic failure and keeps the modal", func() {
			Expect(ctrl.OpenUserModal(user.RoleEmployee)).To(Succeed())
			ctrl.EditUserForm(fill)
			data.SetShouldFail(true)

			res := ctrl.SubmitUser(ctx)
			Expect(res.OK).To(BeFalse())
			Expect(res.Message).To(Equal(dashboard.MsgUserCreateFailed))
			Expect(ctrl.UserPending()).To(BeFalse())
			Expect(ctrl.UserModalRole()).To(Equal(user.RoleEmployee))
			Expect(ctrl.UserForm().Email).To(Equal("nora@example.com"))
			Expect(data.userRefreshes).To(BeZero())
		})

		It("guards against duplicate submissions", func() {
			data.block = make(chan struct{})
			Expect(ctrl.OpenUserModal(user.RoleEmployee)).To(Succeed())
			ctrl.EditUserForm(fill)

			done := make(chan dashboard.Result, 1)
			go func() {
				defer GinkgoRecover()
				done <- ctrl.SubmitUser(ctx)
			}()

			Eventually(ctrl.UserPending).Should(BeTrue())
			Expect(ctrl.SubmitUser(ctx).Err).To(MatchError(dashboard.ErrSubmissionPending))

			close(data.block)
			Eventually(done).Should(Receive(HaveField("OK", BeTrue())))
			Expect(data.accounts).To(HaveLen(1))
		})
	})
})
