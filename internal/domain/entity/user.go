package entity

// UserRecord usuario autenticado tal como lo devuelve el login upstream;
// se persiste bajo la clave "user" del storage.
type UserRecord struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"` // staff, kepala_kua, administrator, penghulu; cualquier otro no tiene permisos
}

// Valid indica si el registro puede iniciar una sesión.
func (u *UserRecord) Valid() bool {
	return u != nil && u.ID != ""
}

// Account usuario tal como lo guarda la API de registros, con credenciales.
type Account struct {
	UserRecord
	PasswordHash string
	Active       bool
}

// Record devuelve la parte pública de la cuenta.
func (a *Account) Record() UserRecord {
	return a.UserRecord
}
