package project

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/core/common/validation"
	projectDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/project"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on_hold"
)

type Project struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ClientID           string    `json:"client_id"`
	ClientName         string    `json:"client_name"`
	Deadline           time.Time `json:"deadline"`
	AssignedEmployees  []string  `json:"assigned_employees"`
	Priority           Priority  `json:"priority"`
	Status             Status    `json:"status"`
	ProgressPercentage int       `json:"progress_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *Project) IsAssigned(employeeID string) bool {
	for _, id := range p.AssignedEmployees {
		if id == employeeID {
			return true
		}
	}
	return false
}

// Fields is the full set of persisted, user-editable project attributes. Every
// write replaces all of them.
type Fields struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ClientID           string   `json:"client_id"`
	ClientName         string   `json:"client_name"`
	Deadline           string   `json:"deadline"`
	AssignedEmployees  []string `json:"assigned_employees"`
	Priority           Priority `json:"priority"`
	Status             Status   `json:"status"`
	ProgressPercentage int      `json:"progress_percentage"`
}

func (f Fields) Validate() error {
	v := validation.NewValidator()
	v.Field("title", f.Title).Required(errors.ErrCodeInvalidTitle).MaxLength(255)
	v.Field("client_id", f.ClientID).Required(errors.ErrCodeInvalidClient)
	v.Field("deadline", f.Deadline).Required(errors.ErrCodeInvalidDeadline).Date(errors.ErrCodeInvalidDeadline)
	v.Field("priority", string(f.Priority)).OneOf(errors.ErrCodeInvalidPriority,
		string(PriorityLow), string(PriorityMedium), string(PriorityHigh))
	v.Field("status", string(f.Status)).OneOf(errors.ErrCodeInvalidStatus,
		string(StatusActive), string(StatusCompleted), string(StatusOnHold))
	v.Field("progress_percentage", f.ProgressPercentage).IntRange(0, 100, errors.ErrCodeInvalidProgress)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// FieldsOf extracts the editable attributes of p, with the deadline as a calendar date.
func FieldsOf(p *Project) Fields {
	return Fields{
		Title:              p.Title,
		Description:        p.Description,
		ClientID:           p.ClientID,
		ClientName:         p.ClientName,
		Deadline:           FormatDeadline(p.Deadline),
		AssignedEmployees:  append([]string{}, p.AssignedEmployees...),
		Priority:           p.Priority,
		Status:             p.Status,
		ProgressPercentage: p.ProgressPercentage,
	}
}

// apply overwrites every editable attribute of p. f must already be validated.
func (f Fields) apply(p *Project) {
	deadline, _ := time.Parse(validation.DateLayout, f.Deadline)
	p.Title = strings.TrimSpace(f.Title)
	p.Description = f.Description
	p.ClientID = f.ClientID
	p.ClientName = f.ClientName
	p.Deadline = deadline
	p.AssignedEmployees = append([]string{}, f.AssignedEmployees...)
	p.Priority = f.Priority
	p.Status = f.Status
	p.ProgressPercentage = f.ProgressPercentage
}

// FormatDeadline renders a stored deadline as a UTC calendar date; zero time yields "".
func FormatDeadline(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(validation.DateLayout)
}

func ToDataModel(p *Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		ClientID:           p.ClientID,
		ClientName:         p.ClientName,
		Deadline:           p.Deadline,
		AssignedEmployees:  append([]string{}, p.AssignedEmployees...),
		Priority:           string(p.Priority),
		Status:             string(p.Status),
		ProgressPercentage: p.ProgressPercentage,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	assigned := p.AssignedEmployees
	if assigned == nil {
		assigned = []string{}
	}
	return &Project{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		ClientID:           p.ClientID,
		ClientName:         p.ClientName,
		Deadline:           p.Deadline,
		AssignedEmployees:  append([]string{}, assigned...),
		Priority:           Priority(p.Priority),
		Status:             Status(p.Status),
		ProgressPercentage: p.ProgressPercentage,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (p *Project) Clone() *Project {
	cp := *p
	cp.AssignedEmployees = append([]string{}, p.AssignedEmployees...)
	return &cp
}
