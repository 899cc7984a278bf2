// Package session contiene el estado de autenticación de un cliente: quién
// inició sesión, con qué token y rol, y si eso ya se sabe.
//
// Una Machine empieza en Hydrating. Initialize la restaura desde el store de
// credenciales una sola vez; después queda Authenticated o Anonymous y nunca
// vuelve a Hydrating. Login y Logout pasan de uno a otro. Los consumidores
// leen un Snapshot o se suscriben con Subscribe; mientras Loading sea true la
// sesión es indeterminada y no debe decidir renderizado ni redirecciones.
package session

import (
	"fmt"
	"sync"

	"github.com/jhoicas/simkah-portal/internal/application/credentials"
	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

// Status estado general de una Machine.
type Status int

const (
	Hydrating Status = iota
	Anonymous
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Hydrating:
		return "hydrating"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Session snapshot inmutable del estado de autenticación.
type Session struct {
	User    *entity.UserRecord
	Token   string
	Role    role.Role
	Loading bool
}

// Authenticated indica si hay un usuario autenticado.
func (s Session) Authenticated() bool {
	return !s.Loading && s.User != nil
}

// Status deriva el estado de la máquina desde el snapshot.
func (s Session) Status() Status {
	switch {
	case s.Loading:
		return Hydrating
	case s.User != nil:
		return Authenticated
	default:
		return Anonymous
	}
}

// CredentialStore persistencia desde la que se hidrata la Machine y en la que
// escribe. *credentials.Store la implementa.
type CredentialStore interface {
	Load() credentials.Fragment
	Save(user entity.UserRecord, token string)
	Clear()
}

// Navigator ejecuta la navegación (redirecciones).
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapta una función a Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Listener recibe snapshots de sesión.
type Listener func(Session)

// Machine dueña de una Session y sus transiciones.
type Machine struct {
	store     CredentialStore
	nav       Navigator
	loginPath string
	log       *logger.Logger

	once sync.Once
	mu   sync.Mutex
	cur  Session

	nextID    int
	listeners map[int]Listener
}

// NewMachine construye una Machine en Hydrating. loginPath es a donde navega
// Logout.
func NewMachine(store CredentialStore, nav Navigator, loginPath string, log *logger.Logger) *Machine {
	if log == nil {
		log = logger.Nop()
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Machine{
		store:     store,
		nav:       nav,
		loginPath: loginPath,
		log:       log.Component("session"),
		cur:       Session{Loading: true},
		listeners: make(map[int]Listener),
	}
}

// Initialize hidrata la sesión desde el store de credenciales. Solo la primera
// llamada tiene efecto. Después Loading es false sin importar lo guardado.
func (m *Machine) Initialize() {
	m.once.Do(func() {
		frag := m.store.Load()

		next := Session{Loading: false}
		if !frag.Empty() {
			next.User = frag.User
			next.Token = frag.Token
			next.Role = role.Parse(frag.User.Role)
		}
		m.log.Debug().
			Str("status", next.Status().String()).
			Str("role", next.Role.String()).
			Msg("session hydrated")
		m.set(next)
	})
}

// Login autentica user con token, persiste ambos y notifica a los suscriptores.
// Llamarlo de nuevo reemplaza usuario, token y rol. Un usuario sin id o un
// token vacío se rechaza con ErrInvalidInput; sesión y store no cambian.
func (m *Machine) Login(user entity.UserRecord, token string) error {
	m.Initialize() // un login también cierra la hidratación

	if token == "" || !user.Valid() {
		m.log.Warn().
			Bool("has_user_id", user.Valid()).
			Bool("has_token", token != "").
			Msg("login refused")
		return fmt.Errorf("%w: login needs a user id and a token", domain.ErrInvalidInput)
	}

	m.store.Save(user, token)
	u := user
	m.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("login")
	m.set(Session{User: &u, Token: token, Role: role.Parse(u.Role)})
	return nil
}

// Logout limpia la sesión y el store, notifica a los suscriptores y luego
// navega al login. Sin usuario autenticado también navega.
func (m *Machine) Logout() {
	m.Initialize()

	m.store.Clear()
	if prev := m.Snapshot(); prev.User != nil {
		m.log.Info().Str("user_id", prev.User.ID).Msg("logout")
	}
	m.set(Session{})
	m.nav.Navigate(m.loginPath)
}

// Snapshot devuelve la sesión actual.
func (m *Machine) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Status devuelve el estado general actual.
func (m *Machine) Status() Status {
	return m.Snapshot().Status()
}

// Subscribe registra fn. fn se llama de inmediato con el snapshot actual y
// luego tras cada transición. La función devuelta cancela la suscripción.
func (m *Machine) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	cur := m.cur
	m.mu.Unlock()

	fn(cur)

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Machine) set(next Session) {
	m.mu.Lock()
	m.cur = next
	listeners := make([]Listener, 0, len(m.listeners))
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
