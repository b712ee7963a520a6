package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/project-dashboard/internal"
	leadDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/lead"
	projectDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/project"
	stageDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/stage"
	userDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/frahmantamala/project-dashboard/internal/dashboard"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	leadPostgres "github.com/frahmantamala/project-dashboard/internal/lead/postgres"
	"github.com/frahmantamala/project-dashboard/internal/project"
	projectPostgres "github.com/frahmantamala/project-dashboard/internal/project/postgres"
	stagePostgres "github.com/frahmantamala/project-dashboard/internal/stage/postgres"
	"github.com/frahmantamala/project-dashboard/internal/user"
	userPostgres "github.com/frahmantamala/project-dashboard/internal/user/postgres"
	"github.com/frahmantamala/project-dashboard/internal/workspace"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	seededManager  = "maya@dashboard.local"
	seededEmployee = "eli@dashboard.local"
	seededClientID = "9b0c6a55-1d8e-4c0a-9f0e-000000000005"
	seededEliID    = "9b0c6a55-1d8e-4c0a-9f0e-000000000002"
	seededRedesign = "5f1d2c3b-7a6e-4d5c-8b9a-000000000001"
	seededAcme     = "c9e3a4f5-0000-4000-8000-000000000001"
)

var _ = Describe("Dashboard CLI", func() {
	var (
		ctx context.Context
		db  *gorm.DB
		bus *events.EventBus
		log *slog.Logger
		ws  *workspace.Workspace
	)

	controllerAs := func(email string, confirm bool) *dashboard.Controller {
		viewer, err := viewerFor(ws.Users(), email)
		Expect(err).NotTo(HaveOccurred())
		confirmer := dashboard.ConfirmFunc(func(string) bool { return confirm })
		return dashboard.NewController(ws, viewer, confirmer, log)
	}

	BeforeEach(func() {
		ctx = context.Background()
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(
			&userDatamodel.User{},
			&projectDatamodel.Project{},
			&leadDatamodel.Lead{},
			&stageDatamodel.Stage{},
			&stageDatamodel.CommentTask{},
		)).To(Succeed())
		Expect(seed(db, false, bcrypt.MinCost)).To(Succeed())

		bus = events.NewEventBus(log)
		ws = workspace.New(
			project.NewService(projectPostgres.NewProjectRepository(db), bus, log),
			lead.NewService(leadPostgres.NewLeadRepository(db), bus, log),
			user.NewService(userPostgres.NewUserRepository(db), bus, bcrypt.MinCost, log),
			stagePostgres.NewStageReader(sqlx.NewDb(sqlDB, "sqlite3")),
			internal.WorkspaceConfig{RefreshInterval: time.Hour, StoreTimeout: time.Second},
			log,
		)
		Expect(ws.Refresh(ctx)).To(Succeed())
	})

	AfterEach(func() {
		bus.Drain()
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("seed", func() {
		It("is safe to run twice", func() {
			Expect(seed(db, false, bcrypt.MinCost)).To(Succeed())
			Expect(ws.Refresh(ctx)).To(Succeed())
			Expect(ws.Users()).To(HaveLen(5))
			Expect(ws.Projects()).To(HaveLen(3))
			Expect(ws.Leads()).To(HaveLen(2))
		})

		It("replaces everything when clearing", func() {
			Expect(db.Exec("UPDATE leads SET estimated_amount = 1 WHERE id = ?", seededAcme).Error).To(Succeed())
			Expect(seed(db, true, bcrypt.MinCost)).To(Succeed())
			Expect(ws.Refresh(ctx)).To(Succeed())

			for _, l := range ws.Leads() {
				if l.ID == seededAcme {
					Expect(l.EstimatedAmount).To(Equal(5000.0))
				}
			}
		})
	})

	Describe("viewerFor", func() {
		It("matches email case-insensitively", func() {
			v, err := viewerFor(ws.Users(), "MAYA@dashboard.local")
			Expect(err).NotTo(HaveOccurred())
			Expect(v.Role).To(Equal(user.RoleManager))
		})

		It("rejects unknown and missing emails", func() {
			_, err := viewerFor(ws.Users(), "nobody@dashboard.local")
			Expect(err).To(HaveOccurred())
			_, err = viewerFor(ws.Users(), " ")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("promptConfirm", func() {
		It("accepts y and yes only", func() {
			var out bytes.Buffer
			confirm := promptConfirm(strings.NewReader("yes\nn\n\nY\n"), &out)
			Expect(confirm("Delete?")).To(BeTrue())
			Expect(confirm("Delete?")).To(BeFalse())
			Expect(confirm("Delete?")).To(BeFalse())
			Expect(confirm("Delete?")).To(BeTrue())
			Expect(out.String()).To(ContainSubstring("Delete? [y/N]: "))
		})

		It("declines when input ends", func() {
			confirm := promptConfirm(strings.NewReader(""), &bytes.Buffer{})
			Expect(confirm("Delete?")).To(BeFalse())
		})
	})

	Describe("projects", func() {
		It("creates a project for a manager with the first client preselected", func() {
			ctrl := controllerAs(seededManager, false)
			res := createProject(ctx, ctrl, projectInput{
				Title: "Intranet", Deadline: "2030-01-15", Employees: []string{seededEliID},
			})
			Expect(res.OK).To(BeTrue(), res.Message)

			Expect(ws.Projects()).To(HaveLen(4))
			created := ws.Projects()[0]
			Expect(created.Title).To(Equal("Intranet"))
			Expect(created.ClientName).To(Equal("Contoso Ltd"))
			Expect(created.AssignedEmployees).To(Equal([]string{seededEliID}))
			Expect(created.Status).To(Equal(project.StatusActive))
		})

		It("refuses employees", func() {
			ctrl := controllerAs(seededEmployee, false)
			res := createProject(ctx, ctrl, projectInput{Title: "Nope", Deadline: "2030-01-15"})
			Expect(res.OK).To(BeFalse())
			Expect(res.Message).To(Equal(dashboard.MsgManagerOnly))
			Expect(ws.Projects()).To(HaveLen(3))
		})

		It("edits only the changed flags", func() {
			ctrl := controllerAs(seededManager, false)
			changed := func(name string) bool { return name == "title" || name == "client" }
			res := editProject(ctx, ctrl, seededRedesign, projectInput{
				Title: "Website Relaunch", Client: seededClientID, Priority: "high",
			}, changed)
			Expect(res.OK).To(BeTrue(), res.Message)

			var got *project.Project
			for _, p := range ws.Projects() {
				if p.ID == seededRedesign {
					got = p
				}
			}
			Expect(got).NotTo(BeNil())
			Expect(got.Title).To(Equal("Website Relaunch"))
			Expect(got.ClientName).To(Equal("Globex Corp"))
			Expect(got.Priority).To(Equal(project.PriorityMedium))
			Expect(got.ProgressPercentage).To(Equal(40))
		})

		It("reports unknown projects", func() {
			ctrl := controllerAs(seededManager, false)
			res := editProject(ctx, ctrl, "missing", projectInput{}, func(string) bool { return false })
			Expect(res.OK).To(BeFalse())
			Expect(res.Err).To(MatchError(internal.ErrProjectNotFound))
		})
	})

	Describe("leads", func() {
		It("updates only the amount on edit", func() {
			ctrl := controllerAs(seededManager, false)
			res := saveLead(ctx, ctrl, seededAcme, dashboard.LeadForm{EstimatedAmount: 6000},
				func(name string) bool { return name == "amount" })
			Expect(res.OK).To(BeTrue(), res.Message)

			for _, l := range ws.Leads() {
				if l.ID == seededAcme {
					Expect(l.Name).To(Equal("Acme"))
					Expect(l.ContactInfo).To(Equal("a@acme.com"))
					Expect(l.EstimatedAmount).To(Equal(6000.0))
				}
			}
		})

		It("adds a lead", func() {
			ctrl := controllerAs(seededManager, false)
			res := saveLead(ctx, ctrl, "", dashboard.LeadForm{Name: "Umbrella", EstimatedAmount: 900}, nil)
			Expect(res.OK).To(BeTrue(), res.Message)
			Expect(ws.Leads()).To(HaveLen(3))
		})

		It("keeps the lead when deletion is declined", func() {
			res := deleteLead(ctx, controllerAs(seededManager, false), seededAcme)
			Expect(res.OK).To(BeFalse())
			Expect(res.Message).To(Equal(dashboard.MsgLeadDeleteCanceled))
			Expect(report(&bytes.Buffer{}, res)).To(Succeed())
			Expect(ws.Leads()).To(HaveLen(2))
		})

		It("deletes the lead once confirmed", func() {
			res := deleteLead(ctx, controllerAs(seededManager, true), seededAcme)
			Expect(res.OK).To(BeTrue(), res.Message)
			Expect(ws.Leads()).To(HaveLen(1))
		})

		It("refuses non-managers", func() {
			res := deleteLead(ctx, controllerAs(seededEmployee, true), seededAcme)
			Expect(res.Message).To(Equal(dashboard.MsgManagerOnly))
			Expect(ws.Leads()).To(HaveLen(2))
		})
	})

	Describe("users", func() {
		It("creates a client account and reloads users", func() {
			ctrl := controllerAs(seededManager, false)
			res := addUser(ctx, ctrl, user.RoleClient, dashboard.UserForm{
				FullName: "Initech", Email: "ops@initech.example", Password: "s3cretpass",
			})
			Expect(res.OK).To(BeTrue(), res.Message)
			Expect(ctrl.Clients()).To(HaveLen(3))
		})

		It("rejects manager accounts", func() {
			ctrl := controllerAs(seededManager, false)
			res := addUser(ctx, ctrl, user.RoleManager, dashboard.UserForm{Email: "x@y.z", Password: "s3cretpass"})
			Expect(res.OK).To(BeFalse())
			Expect(res.Err).To(MatchError(dashboard.ErrInvalidRole))
		})
	})

	Describe("rendering", func() {
		It("renders the overview with stats and open tasks", func() {
			ctrl := controllerAs(seededManager, false)
			Expect(applyShowOptions(ctrl, showOptions{View: "dashboard"})).To(Succeed())

			var out bytes.Buffer
			renderView(&out, ctrl)
			Expect(out.String()).To(ContainSubstring("Total Projects"))
			Expect(out.String()).To(ContainSubstring("52%"))
			Expect(out.String()).To(ContainSubstring("Approve homepage mockup"))
			Expect(out.String()).NotTo(ContainSubstring("Collect brand assets"))
		})

		It("applies filters to the projects view", func() {
			ctrl := controllerAs(seededManager, false)
			Expect(applyShowOptions(ctrl, showOptions{View: "projects", Search: "mobile"})).To(Succeed())

			var out bytes.Buffer
			renderView(&out, ctrl)
			Expect(out.String()).To(ContainSubstring("Mobile App"))
			Expect(out.String()).NotTo(ContainSubstring("Brand Audit"))
		})

		It("rejects unknown views", func() {
			ctrl := controllerAs(seededManager, false)
			Expect(applyShowOptions(ctrl, showOptions{View: "reports"})).NotTo(Succeed())
		})

		It("renders the stages tab of a project", func() {
			ctrl := controllerAs(seededEmployee, false)
			Expect(ctrl.OpenProjectDetail(seededRedesign)).To(Succeed())
			ctrl.SetDetailTab(dashboard.TabStages)

			var out bytes.Buffer
			renderDetail(&out, ctrl)
			Expect(out.String()).To(ContainSubstring("Website Redesign"))
			Expect(out.String()).To(ContainSubstring("Discovery"))
			Expect(out.String()).To(ContainSubstring("Launch"))
		})
	})
})
