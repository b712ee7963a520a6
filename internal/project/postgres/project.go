package postgres

import (
	"context"
	"errors"

	projectDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/project"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update writes every column; a vanished row surfaces as gorm.ErrRecordNotFound.
func (r *ProjectRepository) Update(ctx context.Context, p *projectDatamodel.Project) error {
	res := r.db.WithContext(ctx).Model(p).Select("*").Omit("created_at").Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// List returns projects newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]*projectDatamodel.Project, error) {
	var projects []*projectDatamodel.Project
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id ASC").Find(&projects).Error
	return projects, err
}
