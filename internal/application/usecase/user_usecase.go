package usecase

import (
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/domain/repository"
)

// UserUseCase lee cuentas para la pantalla de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve la parte pública de todas las cuentas.
func (uc *UserUseCase) List() ([]entity.UserRecord, error) {
	accounts, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]entity.UserRecord, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Record())
	}
	return out, nil
}
