package guard

import (
	"sync"

	"github.com/jhoicas/simkah-portal/internal/application/session"
	"github.com/jhoicas/simkah-portal/internal/domain"
)

// Watcher reevalúa un grupo en cada cambio de sesión y hace la redirección,
// como máximo una por evaluación.
type Watcher struct {
	group Group
	path  string
	nav   session.Navigator

	mu          sync.Mutex
	last        Decision
	passes      int
	unsubscribe func()
}

// Watch suscribe a m un Watcher para path. La primera evaluación ocurre antes
// de retornar. Una máquina nil significa que el guard se montó fuera del
// proveedor de sesión: es un error de cableado y hace panic.
func Watch(m *session.Machine, g Group, path string, nav session.Navigator) *Watcher {
	if m == nil {
		panic(domain.ErrNoProvider)
	}
	if nav == nil {
		nav = session.NavigatorFunc(func(string) {})
	}
	w := &Watcher{group: g, path: path, nav: nav}
	unsubscribe := m.Subscribe(w.evaluate)

	w.mu.Lock()
	w.unsubscribe = unsubscribe
	w.mu.Unlock()
	return w
}

func (w *Watcher) evaluate(s session.Session) {
	d := Evaluate(w.group, s, w.path)

	w.mu.Lock()
	w.last = d
	w.passes++
	w.mu.Unlock()

	if d.Kind == Redirect {
		w.nav.Navigate(d.Target)
	}
}

// Decision devuelve el resultado de la última evaluación.
func (w *Watcher) Decision() Decision {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// CanRender indica si ya se puede mostrar el contenido protegido.
func (w *Watcher) CanRender() bool {
	return w.Decision().Kind == Allow
}

// Passes devuelve cuántas evaluaciones corrieron.
func (w *Watcher) Passes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.passes
}

// Stop cancela la suscripción. Se puede llamar más de una vez.
func (w *Watcher) Stop() {
	w.mu.Lock()
	unsubscribe := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
