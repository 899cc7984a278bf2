// Package storage el pequeño almacén clave/valor donde el portal guarda el
// estado del cliente: usuario autenticado, bearer token y borrador de registro.
// Puede ser un mapa en memoria del proceso o las cookies del cliente.
package storage

import (
	"errors"
	"sync"
)

// ErrValueTooLarge el valor no cabe en el medio de almacenamiento.
var ErrValueTooLarge = errors.New("storage: value too large")

// Storage almacén clave/valor de strings con semántica de local storage:
// las lecturas no fallan y una clave ausente se reporta con ok.
type Storage interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
	Remove(key string)
}

// MemoryStorage Storage en memoria del proceso.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage devuelve un MemoryStorage vacío.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// Len devuelve cuántas claves hay guardadas.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
