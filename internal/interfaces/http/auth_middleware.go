package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/credentials"
	"github.com/jhoicas/simkah-portal/internal/application/guard"
	"github.com/jhoicas/simkah-portal/internal/application/session"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/storage"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

// LocalScope clave de c.Locals del *Scope de la petición.
const LocalScope = "simkah_scope"

// Scope lo que monta el proveedor de sesión para una petición.
type Scope struct {
	Machine *session.Machine
	Storage storage.Storage
	Nav     *Navigation
}

// Navigation registra a dónde pidió ir el núcleo. El handler convierte el
// último pedido en una sola redirección HTTP.
type Navigation struct {
	mu     sync.Mutex
	target string
	count  int
}

// Navigate implementa session.Navigator.
func (n *Navigation) Navigate(path string) {
	n.mu.Lock()
	n.target = path
	n.count++
	n.mu.Unlock()
}

// Target devuelve la última ruta pedida, "" si no hay.
func (n *Navigation) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// Count devuelve cuántas navegaciones se pidieron.
func (n *Navigation) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

// ProviderConfig configuración de SessionProvider.
type ProviderConfig struct {
	Cookies   storage.CookieOptions
	LoginPath string
	Log       *logger.Logger
	// Storage reemplaza el storage de cookies; los tests comparten un MemoryStorage.
	Storage func(c *fiber.Ctx) storage.Storage
}

// SessionProvider monta una máquina de auth por petición sobre las cookies del
// cliente y la hidrata antes de los handlers.
func SessionProvider(cfg ProviderConfig) fiber.Handler {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		var kv storage.Storage
		if cfg.Storage != nil {
			kv = cfg.Storage(c)
		} else {
			kv = storage.NewCookieStorage(c, cfg.Cookies)
		}
		nav := &Navigation{}
		m := session.NewMachine(credentials.NewStore(kv, log), nav, cfg.LoginPath, log)
		c.Locals(LocalScope, &Scope{Machine: m, Storage: kv, Nav: nav})
		m.Initialize()
		return c.Next()
	}
}

// ScopeFrom devuelve el scope montado por SessionProvider, nil si falta.
func ScopeFrom(c *fiber.Ctx) *Scope {
	s, _ := c.Locals(LocalScope).(*Scope)
	return s
}

// SessionFrom devuelve la máquina de la petición, nil fuera del proveedor.
func SessionFrom(c *fiber.Ctx) *session.Machine {
	if s := ScopeFrom(c); s != nil {
		return s.Machine
	}
	return nil
}

// GuardRecorder cuenta decisiones del guard. *metrics.Metrics lo implementa.
type GuardRecorder interface {
	GuardDecision(group, decision string)
}

// RequireGuard protege un subárbol de rutas con g. Debe montarse debajo de
// SessionProvider, si no el watcher hace panic. En espera renderiza una página
// neutra; una redirección emite un solo 302.
func RequireGuard(g guard.Group, rec GuardRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := ScopeFrom(c)
		var m *session.Machine
		var nav session.Navigator
		if scope != nil {
			m, nav = scope.Machine, scope.Nav
		}
		w := guard.Watch(m, g, c.Path(), nav)
		defer w.Stop()

		d := w.Decision()
		if rec != nil {
			rec.GuardDecision(g.Name, d.Kind.String())
		}
		switch d.Kind {
		case guard.Allow:
			return c.Next()
		case guard.Redirect:
			return c.Redirect(d.Target, fiber.StatusFound)
		default:
			c.Set(fiber.HeaderCacheControl, "no-store")
			return c.Render("waiting", fiber.Map{"Title": "Memuat"}, layoutMain)
		}
	}
}
