// Package credentials persiste el usuario autenticado y su bearer token en un
// storage.Storage bajo las claves "user" y "token", y los restaura.
// Nunca devuelve errores: lo ilegible se trata como "sin sesión guardada"
// y se purga.
package credentials

import (
	"encoding/json"

	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/storage"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

// Claves del storage.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// Fragment lo que restaura Load: ambos campos o ninguno.
type Fragment struct {
	User  *entity.UserRecord
	Token string
}

// Empty indica que no se restauró sesión.
func (f Fragment) Empty() bool {
	return f.User == nil
}

// Store lee y escribe el par de credenciales.
type Store struct {
	kv  storage.Storage
	log *logger.Logger
}

// NewStore construye un Store sobre kv.
func NewStore(kv storage.Storage, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: kv, log: log.Component("credentials")}
}

// Load restaura usuario y token. Si una mitad falta, está vacía o no se puede
// leer, el par no vale y se limpia lo guardado.
func (s *Store) Load() Fragment {
	rawUser, hasUser := s.kv.Get(KeyUser)
	token, hasToken := s.kv.Get(KeyToken)

	if !hasUser && !hasToken {
		return Fragment{}
	}
	if !hasUser || !hasToken || rawUser == "" || token == "" {
		s.log.Warn().
			Bool("has_user", hasUser).
			Bool("has_token", hasToken).
			Msg("partial stored session discarded")
		s.Clear()
		return Fragment{}
	}

	var user entity.UserRecord
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user is not valid JSON, session discarded")
		s.Clear()
		return Fragment{}
	}
	if !user.Valid() {
		s.log.Warn().Msg("stored user has no id, session discarded")
		s.Clear()
		return Fragment{}
	}
	return Fragment{User: &user, Token: token}
}

// Save escribe usuario y token. Si alguna escritura falla se borran ambas
// claves, así Load nunca ve media sesión.
func (s *Store) Save(user entity.UserRecord, token string) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Error().Err(err).Msg("serialize user")
		s.Clear()
		return
	}
	if err := s.kv.Set(KeyToken, token); err != nil {
		s.log.Error().Err(err).Msg("persist token")
		s.Clear()
		return
	}
	if err := s.kv.Set(KeyUser, string(raw)); err != nil {
		s.log.Error().Err(err).Msg("persist user")
		s.Clear()
		return
	}
}

// Clear borra ambas claves.
func (s *Store) Clear() {
	s.kv.Remove(KeyUser)
	s.kv.Remove(KeyToken)
}
