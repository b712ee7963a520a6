package lead

import (
	"context"
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/project-dashboard/internal"
	leadDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/lead"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/google/uuid"
)

// RepositoryAPI lookups return (nil, nil) when no row matches; Delete reports
// whether a row was removed.
type RepositoryAPI interface {
	Create(ctx context.Context, l *leadDatamodel.Lead) error
	Update(ctx context.Context, l *leadDatamodel.Lead) error
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*leadDatamodel.Lead, error)
	List(ctx context.Context) ([]*leadDatamodel.Lead, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, f Fields) (*Lead, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	l := &Lead{ID: uuid.NewString()}
	f.apply(l)

	row := ToDataModel(l)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create lead", "name", l.Name, "error", err)
		return nil, errors.NewInternalError("Failed to save lead", err)
	}
	created := FromDataModel(row)

	s.logger.Info("lead created", "lead_id", created.ID)
	s.publish(ctx, events.NewLeadCreatedEvent(created.ID, created.Name))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, f Fields) (*Lead, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load lead", err)
	}
	if row == nil {
		return nil, errors.ErrLeadNotFound
	}

	existing := FromDataModel(row)
	f.apply(existing)
	updated := ToDataModel(existing)
	if err := s.repo.Update(ctx, updated); err != nil {
		s.logger.Error("failed to update lead", "lead_id", id, "error", err)
		return nil, errors.NewInternalError("Failed to save lead", err)
	}

	result := FromDataModel(updated)
	s.logger.Info("lead updated", "lead_id", id)
	s.publish(ctx, events.NewLeadUpdatedEvent(result.ID, result.Name))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete lead", "lead_id", id, "error", err)
		return errors.NewInternalError("Failed to delete lead", err)
	}
	if !removed {
		return errors.ErrLeadNotFound
	}

	s.logger.Info("lead deleted", "lead_id", id)
	s.publish(ctx, events.NewLeadDeletedEvent(id))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	if row == nil {
		return nil, errors.ErrLeadNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) List(ctx context.Context) ([]*Lead, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list leads", "error", err)
		return nil, err
	}
	leads := make([]*Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, FromDataModel(row))
	}
	return leads, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
