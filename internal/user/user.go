package user

import (
	"fmt"
	"strings"
	"time"

	userDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/user"
)

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleManager, RoleEmployee, RoleClient:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// AccountRequest is a role-tagged account creation request. Only the
// constructors below set the role, so a zero value is rejected by the service.
type AccountRequest struct {
	role     Role
	Email    string
	Password string
	FullName string
}

func NewEmployeeAccount(email, password, fullName string) AccountRequest {
	return AccountRequest{role: RoleEmployee, Email: email, Password: password, FullName: fullName}
}

func NewClientAccount(email, password, fullName string) AccountRequest {
	return AccountRequest{role: RoleClient, Email: email, Password: password, FullName: fullName}
}

func (a AccountRequest) Role() Role {
	return a.role
}

// ByRole keeps users with the given role, preserving order.
func ByRole(users []*User, role Role) []*User {
	out := make([]*User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         Role(u.Role),
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
