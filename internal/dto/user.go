package dto

import (
	"github.com/jellydator/validation"
)

// LoginForm is the form body for POST /login.
type LoginForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.Email, validation.Required, validation.Length(1, 254)),
		validation.Field(&f.Password, validation.Required),
	)
}
