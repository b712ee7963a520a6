package postgres

import (
	"context"
	"errors"

	leadDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/lead"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) lead.RepositoryAPI {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, l *leadDatamodel.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeadRepository) Update(ctx context.Context, l *leadDatamodel.Lead) error {
	res := r.db.WithContext(ctx).Model(l).Select("*").Omit("created_at").Updates(l)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&leadDatamodel.Lead{})
	return res.RowsAffected > 0, res.Error
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*leadDatamodel.Lead, error) {
	var l leadDatamodel.Lead
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// List returns leads newest first.
func (r *LeadRepository) List(ctx context.Context) ([]*leadDatamodel.Lead, error) {
	var leads []*leadDatamodel.Lead
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id ASC").Find(&leads).Error
	return leads, err
}
