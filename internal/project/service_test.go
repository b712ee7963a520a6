package project_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	apperrors "github.com/frahmantamala/project-dashboard/internal"
	projectDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/project"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/frahmantamala/project-dashboard/internal/project"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockProjectRepository struct {
	rows        map[string]*projectDatamodel.Project
	order       []string
	shouldFail  bool
	updateCalls int
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{rows: map[string]*projectDatamodel.Project{}}
}

func (m *mockProjectRepository) Create(ctx context.Context, p *projectDatamodel.Project) error {
	if m.shouldFail {
		return errors.New("insert failed")
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.rows[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, p *projectDatamodel.Project) error {
	m.updateCalls++
	if m.shouldFail {
		return errors.New("update failed")
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*projectDatamodel.Project, error) {
	out := make([]*projectDatamodel.Project, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

type recordingPublisher struct {
	types []string
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.types = append(p.types, e.EventType())
	return nil
}

func redesignFields() project.Fields {
	return project.Fields{
		Title:             "Redesign",
		ClientID:          "c1",
		ClientName:        "Acme",
		Deadline:          "2024-06-01",
		AssignedEmployees: []string{},
		Priority:          project.PriorityMedium,
	}
}

var _ = Describe("Project Service", func() {
	var (
		repo      *mockProjectRepository
		publisher *recordingPublisher
		service   *project.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockProjectRepository()
		publisher = &recordingPublisher{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = project.NewService(repo, publisher, slogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should default status to active and progress to 0", func() {
			p, err := service.Create(ctx, redesignFields())

			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).NotTo(BeEmpty())
			Expect(p.Status).To(Equal(project.StatusActive))
			Expect(p.ProgressPercentage).To(BeZero())
			Expect(project.FormatDeadline(p.Deadline)).To(Equal("2024-06-01"))
			Expect(p.CreatedAt).NotTo(BeZero())
			Expect(publisher.types).To(Equal([]string{events.EventTypeProjectCreated}))
		})

		DescribeTable("should reject incomplete or invalid fields",
			func(mutate func(*project.Fields), code apperrors.ErrorCode) {
				f := redesignFields()
				mutate(&f)

				_, err := service.Create(ctx, f)

				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				details := appErr.Details.(apperrors.ValidationErrors)
				Expect(details.Errors[0].Code).To(Equal(string(code)))
				Expect(repo.rows).To(BeEmpty())
			},
			Entry("missing title", func(f *project.Fields) { f.Title = "  " }, apperrors.ErrCodeInvalidTitle),
			Entry("missing client", func(f *project.Fields) { f.ClientID = "" }, apperrors.ErrCodeInvalidClient),
			Entry("missing deadline", func(f *project.Fields) { f.Deadline = "" }, apperrors.ErrCodeInvalidDeadline),
			Entry("malformed deadline", func(f *project.Fields) { f.Deadline = "06/01/2024" }, apperrors.ErrCodeInvalidDeadline),
			Entry("unknown priority", func(f *project.Fields) { f.Priority = "urgent" }, apperrors.ErrCodeInvalidPriority),
			Entry("unknown status", func(f *project.Fields) { f.Status = "archived" }, apperrors.ErrCodeInvalidStatus),
			Entry("progress above 100", func(f *project.Fields) { f.ProgressPercentage = 101 }, apperrors.ErrCodeInvalidProgress),
		)

		It("should surface store failures as internal errors", func() {
			repo.shouldFail = true
			_, err := service.Create(ctx, redesignFields())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
			Expect(publisher.types).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("should replace every field and keep id and created_at", func() {
			created, err := service.Create(ctx, redesignFields())
			Expect(err).NotTo(HaveOccurred())

			f := project.FieldsOf(created)
			f.Priority = project.PriorityHigh
			f.ProgressPercentage = 40
			f.AssignedEmployees = []string{"e1"}

			updated, err := service.Update(ctx, created.ID, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(created.ID))
			Expect(updated.CreatedAt).To(Equal(created.CreatedAt))
			Expect(updated.Priority).To(Equal(project.PriorityHigh))
			Expect(updated.ProgressPercentage).To(Equal(40))
			Expect(updated.AssignedEmployees).To(Equal([]string{"e1"}))
			Expect(updated.Status).To(Equal(project.StatusActive))
			Expect(publisher.types).To(ContainElement(events.EventTypeProjectUpdated))
		})

		It("should keep the stored status when none is given", func() {
			created, _ := service.Create(ctx, project.Fields{Title: "T", ClientID: "c1", Deadline: "2024-06-01", Status: project.StatusOnHold})

			f := project.FieldsOf(created)
			f.Status = ""
			updated, err := service.Update(ctx, created.ID, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(project.StatusOnHold))
		})

		It("should return ErrProjectNotFound for an unknown id", func() {
			_, err := service.Update(ctx, "missing", redesignFields())
			Expect(errors.Is(err, apperrors.ErrProjectNotFound)).To(BeTrue())
			Expect(repo.updateCalls).To(BeZero())
		})
	})

	Describe("Get", func() {
		It("should return ErrProjectNotFound for an unknown id", func() {
			_, err := service.Get(ctx, "missing")
			Expect(errors.Is(err, apperrors.ErrProjectNotFound)).To(BeTrue())
		})
	})
})
