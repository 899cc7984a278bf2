package usecase

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/domain/repository"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
)

// RegistrationUseCase crea registros y los mueve por la revisión.
type RegistrationUseCase struct {
	regs  repository.RegistrationRepository
	users repository.UserRepository
	now   func() time.Time
}

// NewRegistrationUseCase construye el caso de uso. now por defecto es time.Now.
func NewRegistrationUseCase(regs repository.RegistrationRepository, users repository.UserRepository, now func() time.Time) *RegistrationUseCase {
	if now == nil {
		now = time.Now
	}
	return &RegistrationUseCase{regs: regs, users: users, now: now}
}

// Create valida un borrador completo y lo guarda como submitted.
func (uc *RegistrationUseCase) Create(in dto.RegistrationDraft) (*dto.RegistrationResponse, error) {
	now := uc.now()
	for _, step := range dto.Steps {
		if err := in.ValidateStep(step, now); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, validation.Errors{step: err})
		}
	}
	number, err := uc.regs.NextNumber(now)
	if err != nil {
		return nil, err
	}
	reg := &entity.Registration{
		ID:        uuid.New().String(),
		Number:    number,
		Groom:     in.Groom,
		Bride:     in.Bride,
		Schedule:  in.Schedule,
		Status:    entity.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.regs.Create(reg); err != nil {
		return nil, err
	}
	return &dto.RegistrationResponse{ID: reg.ID, Number: reg.Number, Status: reg.Status}, nil
}

// List devuelve los registros visibles para actor. Un penghulu solo ve los suyos.
func (uc *RegistrationUseCase) List(actor Actor, status string) ([]entity.Registration, error) {
	filter := repository.RegistrationFilter{Status: status}
	if actor.Role == role.Penghulu {
		filter.PenghuluID = actor.UserID
	}
	regs, err := uc.regs.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Registration, 0, len(regs))
	for _, r := range regs {
		out = append(out, *r)
	}
	return out, nil
}

// Get devuelve un registro; un penghulu que pide uno ajeno recibe ErrNotFound.
func (uc *RegistrationUseCase) Get(actor Actor, id string) (*entity.Registration, error) {
	reg, err := uc.regs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == role.Penghulu && reg.PenghuluID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return reg, nil
}

// UpdateStatus aplica una decisión de revisión. Un penghulu solo puede
// completar sus propios akad agendados. Al agendar se asigna el penghulu con
// menos agendas abiertas.
func (uc *RegistrationUseCase) UpdateStatus(actor Actor, id string, in dto.StatusUpdateRequest) (*entity.Registration, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	reg, err := uc.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == role.Penghulu && in.Status != entity.StatusCompleted {
		return nil, domain.ErrForbidden
	}
	if !entity.CanTransition(reg.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrConflict, reg.Status, in.Status)
	}

	if in.Status == entity.StatusScheduled && reg.PenghuluID == "" {
		p, err := uc.pickPenghulu()
		if err != nil {
			return nil, err
		}
		reg.PenghuluID, reg.PenghuluName = p.ID, p.DisplayName
	}
	reg.Status = in.Status
	reg.Note = in.Note
	reg.UpdatedAt = uc.now()
	if err := uc.regs.Update(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (uc *RegistrationUseCase) pickPenghulu() (*entity.Account, error) {
	candidates, err := uc.users.ListByRole(role.NamePenghulu)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no penghulu available", domain.ErrConflict)
	}
	var best *entity.Account
	bestLoad := -1
	for _, c := range candidates {
		open, err := uc.regs.List(repository.RegistrationFilter{Status: entity.StatusScheduled, PenghuluID: c.ID})
		if err != nil {
			return nil, err
		}
		if bestLoad < 0 || len(open) < bestLoad {
			best, bestLoad = c, len(open)
		}
	}
	return best, nil
}

// Schedules lista los akad agendados y completados como agendas.
// Un penghulu ve los suyos; los roles admin ven todos.
func (uc *RegistrationUseCase) Schedules(actor Actor) ([]entity.Assignment, error) {
	filter := repository.RegistrationFilter{}
	if actor.Role == role.Penghulu {
		filter.PenghuluID = actor.UserID
	}
	regs, err := uc.regs.List(filter)
	if err != nil {
		return nil, err
	}
	out := []entity.Assignment{}
	for _, r := range regs {
		if r.PenghuluID == "" {
			continue
		}
		if r.Status != entity.StatusScheduled && r.Status != entity.StatusCompleted {
			continue
		}
		out = append(out, toAssignment(r))
	}
	return out, nil
}

func toAssignment(r *entity.Registration) entity.Assignment {
	return entity.Assignment{
		ID:             r.ID,
		RegistrationID: r.ID,
		Number:         r.Number,
		Couple:         r.Couple(),
		PenghuluID:     r.PenghuluID,
		PenghuluName:   r.PenghuluName,
		Date:           r.Schedule.Date,
		Time:           r.Schedule.Time,
		Venue:          r.Schedule.Venue,
		Address:        r.Schedule.Address,
	}
}
