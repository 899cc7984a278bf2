package repository

import "github.com/jhoicas/simkah-portal/internal/domain/entity"

// UserRepository define el puerto de persistencia para las cuentas de la API de registros.
type UserRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	// FindByEmail ignora mayúsculas. Devuelve (nil, nil) si no existe.
	FindByEmail(email string) (*entity.Account, error)
	List() ([]*entity.Account, error)
	ListByRole(role string) ([]*entity.Account, error)
}
