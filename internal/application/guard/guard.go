// Package guard decide si una sesión puede ver un grupo de rutas.
//
// La evaluación es una función pura del grupo, el snapshot de sesión y la ruta
// pedida. Mientras la sesión se hidrata la respuesta siempre es Wait: no se
// redirige con una sesión indeterminada. Un requisito fallido produce un solo
// Redirect al fallback del grupo.
//
// La verificación usa lo que diga el storage del cliente. Un cliente que edita
// su rol guardado pasa el guard; la API upstream debe aplicar el acceso por
// su cuenta.
package guard

import (
	"strings"

	"github.com/jhoicas/simkah-portal/internal/application/session"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
)

// Kind resultado de una evaluación.
type Kind int

const (
	Wait Kind = iota
	Allow
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "invalid"
	}
}

// Decision lo que el guard pide hacer en una pasada.
type Decision struct {
	Kind   Kind
	Target string // solo para Redirect
}

// Predicate permiso que exige un grupo.
type Predicate func(role.Role) bool

// Group describe un subárbol de rutas protegido.
type Group struct {
	Name     string
	Require  Predicate
	Fallback string
	// ConfineStaff devuelve a staff a StaffHome cuando sale de ahí,
	// aunque staff cumpla el requisito del área admin.
	ConfineStaff bool
	StaffHome    string
}

// Routes destinos de redirección de los grupos estándar.
type Routes struct {
	Login        string
	StaffHome    string
	PenghuluHome string
}

// AdminArea admite todo rol reconocido; staff queda confinado a su subárbol.
func AdminArea(r Routes) Group {
	return Group{
		Name:         "admin",
		Require:      role.Role.IsAdminArea,
		Fallback:     r.Login,
		ConfineStaff: true,
		StaffHome:    r.StaffHome,
	}
}

// StaffArea admite solo staff.
func StaffArea(r Routes) Group {
	return Group{Name: "staff", Require: role.Role.IsStaffOnly, Fallback: r.Login}
}

// PenghuluArea admite solo penghulu.
func PenghuluArea(r Routes) Group {
	return Group{Name: "penghulu", Require: role.Role.IsPenghulu, Fallback: r.Login}
}

// Evaluate decide el resultado para la sesión s que pide path.
func Evaluate(g Group, s session.Session, path string) Decision {
	if s.Loading {
		return Decision{Kind: Wait}
	}
	if s.User == nil || g.Require == nil || !g.Require(s.Role) {
		return Decision{Kind: Redirect, Target: g.Fallback}
	}
	if g.ConfineStaff && s.Role == role.Staff && !under(path, g.StaffHome) {
		if strings.TrimRight(g.StaffHome, "/") == "" {
			return Decision{Kind: Redirect, Target: g.Fallback}
		}
		return Decision{Kind: Redirect, Target: g.StaffHome}
	}
	return Decision{Kind: Allow}
}

// under indica si path es prefix o está debajo. Un prefix vacío o raíz
// no contiene nada: sin staff home no se admite ninguna ruta.
func under(path, prefix string) bool {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return false
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
