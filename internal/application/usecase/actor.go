package usecase

import "github.com/jhoicas/simkah-portal/internal/domain/role"

// Actor usuario que llama, tomado de los claims del token.
type Actor struct {
	UserID string
	Role   role.Role
}
