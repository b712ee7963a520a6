package project

import (
	"context"
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/project-dashboard/internal"
	projectDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/project"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/google/uuid"
)

// RepositoryAPI lookups return (nil, nil) when no row matches.
type RepositoryAPI interface {
	Create(ctx context.Context, p *projectDatamodel.Project) error
	Update(ctx context.Context, p *projectDatamodel.Project) error
	GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error)
	List(ctx context.Context) ([]*projectDatamodel.Project, error)
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

// Create persists a new project. Status defaults to active and priority to medium.
func (s *Service) Create(ctx context.Context, f Fields) (*Project, error) {
	if f.Status == "" {
		f.Status = StatusActive
	}
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	if err := f.Validate(); err != nil {
		s.logger.Warn("project create rejected", "title", f.Title, "error", err)
		return nil, err
	}

	p := &Project{ID: uuid.NewString()}
	f.apply(p)

	row := ToDataModel(p)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create project", "title", p.Title, "error", err)
		return nil, errors.NewInternalError("Failed to save project", err)
	}
	created := FromDataModel(row)

	s.logger.Info("project created", "project_id", created.ID, "client_id", created.ClientID)
	s.publish(ctx, events.NewProjectCreatedEvent(created.ID, created.Title, string(created.Status)))
	return created, nil
}

// Update replaces every editable attribute of an existing project. Empty status
// or priority keep the stored value.
func (s *Service) Update(ctx context.Context, id string, f Fields) (*Project, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load project", err)
	}
	if row == nil {
		return nil, errors.ErrProjectNotFound
	}

	existing := FromDataModel(row)
	if f.Status == "" {
		f.Status = existing.Status
	}
	if f.Priority == "" {
		f.Priority = existing.Priority
	}
	if err := f.Validate(); err != nil {
		s.logger.Warn("project update rejected", "project_id", id, "error", err)
		return nil, err
	}

	f.apply(existing)
	updated := ToDataModel(existing)
	if err := s.repo.Update(ctx, updated); err != nil {
		s.logger.Error("failed to update project", "project_id", id, "error", err)
		return nil, errors.NewInternalError("Failed to save project", err)
	}

	result := FromDataModel(updated)
	s.logger.Info("project updated", "project_id", id)
	s.publish(ctx, events.NewProjectUpdatedEvent(result.ID, result.Title, string(result.Status)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if row == nil {
		return nil, errors.ErrProjectNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) List(ctx context.Context) ([]*Project, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}
	projects := make([]*Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, FromDataModel(row))
	}
	return projects, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
