package repository

import (
	"time"

	"github.com/jhoicas/simkah-portal/internal/domain/entity"
)

// RegistrationFilter acota List. Los valores cero no filtran.
type RegistrationFilter struct {
	Status     string
	PenghuluID string
}

// RegistrationRepository define el puerto de persistencia para registros de matrimonio.
type RegistrationRepository interface {
	Create(reg *entity.Registration) error
	GetByID(id string) (*entity.Registration, error)
	Update(reg *entity.Registration) error
	List(filter RegistrationFilter) ([]*entity.Registration, error)
	// NextNumber devuelve el siguiente número de registro del día.
	NextNumber(day time.Time) (string, error)
}
