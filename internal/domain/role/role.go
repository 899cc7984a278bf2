// Package role clasifica el string de rol de un usuario en el conjunto cerrado
// de roles que entiende el portal y responde las preguntas de permisos que
// hace el guard de rutas.
package role

// Role rol reconocido del portal. El valor cero es Unknown.
type Role int

const (
	Unknown Role = iota
	Staff
	KepalaKUA
	Administrator
	Penghulu
)

// Nombres tal como los envía la API upstream.
const (
	NameStaff         = "staff"
	NameKepalaKUA     = "kepala_kua"
	NameAdministrator = "administrator"
	NamePenghulu      = "penghulu"
)

var names = map[Role]string{
	Staff:         NameStaff,
	KepalaKUA:     NameKepalaKUA,
	Administrator: NameAdministrator,
	Penghulu:      NamePenghulu,
}

var byName = map[string]Role{
	NameStaff:         Staff,
	NameKepalaKUA:     KepalaKUA,
	NameAdministrator: Administrator,
	NamePenghulu:      Penghulu,
}

// Recognized devuelve los roles del área admin en su orden canónico.
func Recognized() []Role {
	return []Role{Staff, KepalaKUA, Administrator, Penghulu}
}

// Parse convierte un nombre exacto en Role. Distingue mayúsculas;
// cualquier otro valor, incluido el string vacío, es Unknown.
func Parse(s string) Role {
	if r, ok := byName[s]; ok {
		return r
	}
	return Unknown
}

// String devuelve el nombre del rol, o "unknown".
func (r Role) String() string {
	if s, ok := names[r]; ok {
		return s
	}
	return "unknown"
}

// Known indica si r es uno de los roles reconocidos.
func (r Role) Known() bool {
	_, ok := names[r]
	return ok
}

// IsAdminArea es true para todo rol reconocido, penghulu incluido.
func (r Role) IsAdminArea() bool { return r.Known() }

// IsPenghulu es true solo para Penghulu.
func (r Role) IsPenghulu() bool { return r == Penghulu }

// IsStaffOnly es true solo para Staff.
func (r Role) IsStaffOnly() bool { return r == Staff }

// IsAdminArea indica si el string de rol puede entrar al área admin.
func IsAdminArea(s string) bool { return Parse(s).IsAdminArea() }

// IsPenghulu indica si el string de rol es exactamente "penghulu".
func IsPenghulu(s string) bool { return Parse(s).IsPenghulu() }

// IsStaffOnly indica si el string de rol es exactamente "staff".
func IsStaffOnly(s string) bool { return Parse(s).IsStaffOnly() }

// Homes ruta de inicio de cada grupo de roles.
type Homes struct {
	Public   string
	Admin    string
	Staff    string
	Penghulu string
}

// Home devuelve a dónde llega r después de iniciar sesión.
func (h Homes) Home(r Role) string {
	switch r {
	case Staff:
		return h.Staff
	case Penghulu:
		return h.Penghulu
	case KepalaKUA, Administrator:
		return h.Admin
	default:
		return h.Public
	}
}
