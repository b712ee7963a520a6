package auth

import (
	errors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required(errors.ErrCodeInvalidEmail)
	v.Field("password", d.Password).Required(errors.ErrCodeValidationFailed)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required(errors.ErrCodeInvalidToken)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
