package user

import (
	errors "github.com/frahmantamala/project-dashboard/internal"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ToAccountRequest maps the requested role onto one of the two account variants.
func (r CreateUserRequest) ToAccountRequest() (AccountRequest, error) {
	role, err := ParseRole(r.Role)
	if err != nil {
		return AccountRequest{}, errors.NewValidationFieldError("role", "role must be employee or client", errors.ErrCodeInvalidRole)
	}
	switch role {
	case RoleEmployee:
		return NewEmployeeAccount(r.Email, r.Password, r.FullName), nil
	case RoleClient:
		return NewClientAccount(r.Email, r.Password, r.FullName), nil
	default:
		return AccountRequest{}, errors.NewValidationFieldError("role", "role must be employee or client", errors.ErrCodeInvalidRole)
	}
}

type UsersResponse struct {
	Users []*User `json:"users"`
}
