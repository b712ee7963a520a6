package lead

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/core/common/validation"
	leadDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/lead"
)

type Lead struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ContactInfo     string    `json:"contact_info"`
	EstimatedAmount float64   `json:"estimated_amount"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Fields is the editable attribute set; updates replace all of it.
type Fields struct {
	Name            string  `json:"name"`
	ContactInfo     string  `json:"contact_info"`
	EstimatedAmount float64 `json:"estimated_amount"`
	Notes           string  `json:"notes"`
}

func (f Fields) Validate() error {
	v := validation.NewValidator()
	v.Field("name", f.Name).Required(errors.ErrCodeValidationFailed).MaxLength(255)
	v.Field("estimated_amount", f.EstimatedAmount).NonNegative(errors.ErrCodeInvalidAmount)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func FieldsOf(l *Lead) Fields {
	return Fields{
		Name:            l.Name,
		ContactInfo:     l.ContactInfo,
		EstimatedAmount: l.EstimatedAmount,
		Notes:           l.Notes,
	}
}

func (f Fields) apply(l *Lead) {
	l.Name = strings.TrimSpace(f.Name)
	l.ContactInfo = f.ContactInfo
	l.EstimatedAmount = f.EstimatedAmount
	l.Notes = f.Notes
}

func ToDataModel(l *Lead) *leadDatamodel.Lead {
	return &leadDatamodel.Lead{
		ID:              l.ID,
		Name:            l.Name,
		ContactInfo:     l.ContactInfo,
		EstimatedAmount: l.EstimatedAmount,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func FromDataModel(l *leadDatamodel.Lead) *Lead {
	return &Lead{
		ID:              l.ID,
		Name:            l.Name,
		ContactInfo:     l.ContactInfo,
		EstimatedAmount: l.EstimatedAmount,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
