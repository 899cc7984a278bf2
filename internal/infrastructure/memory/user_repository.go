// Package memory repositorios protegidos con RWMutex para la API de registros
// de desarrollo. Los datos viven lo que vive el proceso.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda cuentas por id, con índice de email en minúsculas.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entity.Account
	byEmail map[string]string
}

// NewUserRepository construye un repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: map[string]*entity.Account{}, byEmail: map[string]string{}}
}

// Create guarda una copia de account. Id o email duplicado es conflicto.
func (r *UserRepo) Create(account *entity.Account) error {
	if account == nil || account.ID == "" {
		return domain.ErrInvalidInput
	}
	email := strings.ToLower(account.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[account.ID]; ok {
		return fmt.Errorf("user %s: %w", account.ID, domain.ErrConflict)
	}
	if _, ok := r.byEmail[email]; ok {
		return fmt.Errorf("email %s: %w", account.Email, domain.ErrConflict)
	}
	cp := *account
	r.byID[cp.ID] = &cp
	r.byEmail[email] = cp.ID
	return nil
}

// GetByID devuelve ErrNotFound si el id no existe.
func (r *UserRepo) GetByID(id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

// List devuelve todas las cuentas ordenadas por nombre.
func (r *UserRepo) List() ([]*entity.Account, error) {
	return r.list(func(*entity.Account) bool { return true }), nil
}

func (r *UserRepo) ListByRole(role string) ([]*entity.Account, error) {
	return r.list(func(a *entity.Account) bool { return a.Role == role }), nil
}

func (r *UserRepo) list(keep func(*entity.Account) bool) []*entity.Account {
	r.mu.RLock()
	out := make([]*entity.Account, 0, len(r.byID))
	for _, a := range r.byID {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}
