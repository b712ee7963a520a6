package dashboard

import (
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/user"
)

type LeadForm struct {
	Name            string
	ContactInfo     string
	EstimatedAmount float64
	Notes           string
}

func LeadFormFrom(l *lead.Lead) LeadForm {
	return LeadForm{
		Name:            l.Name,
		ContactInfo:     l.ContactInfo,
		EstimatedAmount: l.EstimatedAmount,
		Notes:           l.Notes,
	}
}

func (f LeadForm) Fields() lead.Fields {
	return lead.Fields{
		Name:            f.Name,
		ContactInfo:     f.ContactInfo,
		EstimatedAmount: f.EstimatedAmount,
		Notes:           f.Notes,
	}
}

type UserForm struct {
	FullName string
	Email    string
	Password string
}

// AccountRequest builds the variant matching role. Only employee and client
// accounts can be requested.
func (f UserForm) AccountRequest(role user.Role) (user.AccountRequest, bool) {
	switch role {
	case user.RoleEmployee:
		return user.NewEmployeeAccount(f.Email, f.Password, f.FullName), true
	case user.RoleClient:
		return user.NewClientAccount(f.Email, f.Password, f.FullName), true
	default:
		return user.AccountRequest{}, false
	}
}
