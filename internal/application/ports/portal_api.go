package ports

import (
	"context"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
)

// PortalAPI puerto de salida hacia la API REST dueña de registros, usuarios
// y agendas. El portal no guarda datos de negocio.
// Toda llamada recibe un context; las implementaciones deben respetar su
// cancelación y deadline.
type PortalAPI interface {
	// Login cambia credenciales por un bearer token y el usuario.
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)

	// CreateRegistration envía un borrador completo. Público, sin token.
	CreateRegistration(ctx context.Context, in dto.RegistrationDraft) (*dto.RegistrationResponse, error)

	ListRegistrations(ctx context.Context, token, status string) ([]entity.Registration, error)
	GetRegistration(ctx context.Context, token, id string) (*entity.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, token, id string, in dto.StatusUpdateRequest) (*entity.Registration, error)

	ListUsers(ctx context.Context, token string) ([]entity.UserRecord, error)

	// ListSchedules devuelve las agendas del usuario (todas para roles admin).
	ListSchedules(ctx context.Context, token string) ([]entity.Assignment, error)
}
