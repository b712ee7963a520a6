package lead_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	apperrors "github.com/frahmantamala/project-dashboard/internal"
	leadDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/lead"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockLeadRepository struct {
	rows       map[string]*leadDatamodel.Lead
	shouldFail bool
	deletes    []string
}

func newMockLeadRepository() *mockLeadRepository {
	return &mockLeadRepository{rows: map[string]*leadDatamodel.Lead{}}
}

func (m *mockLeadRepository) SetShouldFail(fail bool) {
	m.shouldFail = fail
}

func (m *mockLeadRepository) Create(ctx context.Context, l *leadDatamodel.Lead) error {
	if m.shouldFail {
		return errors.New("insert failed")
	}
	cp := *l
	m.rows[l.ID] = &cp
	return nil
}

func (m *mockLeadRepository) Update(ctx context.Context, l *leadDatamodel.Lead) error {
	if m.shouldFail {
		return errors.New("update failed")
	}
	cp := *l
	m.rows[l.ID] = &cp
	return nil
}

func (m *mockLeadRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.deletes = append(m.deletes, id)
	if m.shouldFail {
		return false, errors.New("delete failed")
	}
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *mockLeadRepository) GetByID(ctx context.Context, id string) (*leadDatamodel.Lead, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (m *mockLeadRepository) List(ctx context.Context) ([]*leadDatamodel.Lead, error) {
	out := make([]*leadDatamodel.Lead, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
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

var _ = Describe("Lead Service", func() {
	var (
		repo      *mockLeadRepository
		publisher *recordingPublisher
		service   *lead.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockLeadRepository()
		publisher = &recordingPublisher{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = lead.NewService(repo, publisher, slogger)
		ctx = context.Background()
	})

	It("should create a lead and publish lead.created", func() {
		l, err := service.Create(ctx, lead.Fields{Name: "Acme", ContactInfo: "a@acme.com", EstimatedAmount: 5000})

		Expect(err).NotTo(HaveOccurred())
		Expect(l.ID).NotTo(BeEmpty())
		Expect(repo.rows).To(HaveKey(l.ID))
		Expect(publisher.types).To(Equal([]string{events.EventTypeLeadCreated}))
	})

	It("should require a name", func() {
		_, err := service.Create(ctx, lead.Fields{Name: " "})
		Expect(err).To(HaveOccurred())
		Expect(repo.rows).To(BeEmpty())
	})

	It("should reject a negative estimated amount", func() {
		_, err := service.Create(ctx, lead.Fields{Name: "Acme", EstimatedAmount: -1})

		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Details.(apperrors.ValidationErrors).Errors[0].Code).To(Equal(string(apperrors.ErrCodeInvalidAmount)))
	})

	It("should replace all fields on update", func() {
		l, _ := service.Create(ctx, lead.Fields{Name: "Acme", ContactInfo: "a@acme.com", EstimatedAmount: 5000, Notes: "warm"})

		updated, err := service.Update(ctx, l.ID, lead.Fields{Name: "Acme", EstimatedAmount: 6000})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.EstimatedAmount).To(Equal(6000.0))
		Expect(updated.ContactInfo).To(BeEmpty())
		Expect(updated.Notes).To(BeEmpty())
	})

	It("should return ErrLeadNotFound when updating an unknown lead", func() {
		_, err := service.Update(ctx, "missing", lead.Fields{Name: "Acme"})
		Expect(errors.Is(err, apperrors.ErrLeadNotFound)).To(BeTrue())
	})

	It("should delete a lead and publish lead.deleted", func() {
		l, _ := service.Create(ctx, lead.Fields{Name: "Acme"})

		Expect(service.Delete(ctx, l.ID)).To(Succeed())
		Expect(repo.rows).To(BeEmpty())
		Expect(publisher.types).To(ContainElement(events.EventTypeLeadDeleted))
	})

	It("should return ErrLeadNotFound when deleting an unknown lead", func() {
		err := service.Delete(ctx, "missing")
		Expect(errors.Is(err, apperrors.ErrLeadNotFound)).To(BeTrue())
	})

	It("should wrap store failures", func() {
		repo.SetShouldFail(true)
		err := service.Delete(ctx, "any")

		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
	})
})
