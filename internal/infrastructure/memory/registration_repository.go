package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/domain/repository"
)

var _ repository.RegistrationRepository = (*RegistrationRepo)(nil)

// RegistrationRepo guarda registros por id.
type RegistrationRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Registration
	seq   map[string]int // por día, "20260310" -> última secuencia
}

// NewRegistrationRepository construye un repositorio vacío.
func NewRegistrationRepository() *RegistrationRepo {
	return &RegistrationRepo{items: map[string]*entity.Registration{}, seq: map[string]int{}}
}

func (r *RegistrationRepo) Create(reg *entity.Registration) error {
	if reg == nil || reg.ID == "" {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[reg.ID]; ok {
		return fmt.Errorf("registration %s: %w", reg.ID, domain.ErrConflict)
	}
	cp := *reg
	r.items[cp.ID] = &cp
	return nil
}

func (r *RegistrationRepo) GetByID(id string) (*entity.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

// Update reemplaza un registro; ErrNotFound si no existe.
func (r *RegistrationRepo) Update(reg *entity.Registration) error {
	if reg == nil {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *reg
	r.items[cp.ID] = &cp
	return nil
}

// List devuelve las coincidencias, las más recientes primero.
func (r *RegistrationRepo) List(filter repository.RegistrationFilter) ([]*entity.Registration, error) {
	r.mu.RLock()
	out := make([]*entity.Registration, 0, len(r.items))
	for _, reg := range r.items {
		if filter.Status != "" && reg.Status != filter.Status {
			continue
		}
		if filter.PenghuluID != "" && reg.PenghuluID != filter.PenghuluID {
			continue
		}
		cp := *reg
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Number > out[j].Number
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// NextNumber formatea KUA-<yyyymmdd>-<seq>; la secuencia reinicia cada día.
func (r *RegistrationRepo) NextNumber(day time.Time) (string, error) {
	key := day.Format("20060102")
	r.mu.Lock()
	r.seq[key]++
	n := r.seq[key]
	r.mu.Unlock()
	return fmt.Sprintf("KUA-%s-%04d", key, n), nil
}
