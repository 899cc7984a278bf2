package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/simkah-portal/internal/domain/entity"
)

// LoginRequest formulario de login, se reenvía tal cual a la API upstream.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate valida el formulario de login.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email wajib diisi"),
			is.Email.Error("format email tidak valid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("kata sandi wajib diisi"),
		),
	)
}

// LoginResponse respuesta upstream a un login exitoso.
type LoginResponse struct {
	Token string            `json:"token"`
	User  entity.UserRecord `json:"user"`
}

// UserListResponse listado de usuarios upstream.
type UserListResponse struct {
	Items []entity.UserRecord `json:"items"`
}
