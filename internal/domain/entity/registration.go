package entity

import "time"

// Estados de un registro tal como los usa la API upstream.
const (
	StatusSubmitted = "submitted"
	StatusVerified  = "verified"
	StatusRejected  = "rejected"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

// Estado civil de un solicitante.
const (
	MaritalSingle   = "belum_kawin"
	MaritalDivorced = "cerai_hidup"
	MaritalWidowed  = "cerai_mati"
)

// Person uno de los dos solicitantes.
type Person struct {
	FullName      string `json:"full_name" form:"full_name"`
	NIK           string `json:"nik" form:"nik"` // documento nacional de 16 dígitos
	BirthPlace    string `json:"birth_place" form:"birth_place"`
	BirthDate     string `json:"birth_date" form:"birth_date"` // YYYY-MM-DD
	Occupation    string `json:"occupation" form:"occupation"`
	Address       string `json:"address" form:"address"`
	Phone         string `json:"phone" form:"phone"`
	FatherName    string `json:"father_name" form:"father_name"`
	MaritalStatus string `json:"marital_status" form:"marital_status"`
}

// Schedule fecha, hora y lugar solicitados para el akad.
type Schedule struct {
	Date    string `json:"date" form:"date"` // YYYY-MM-DD
	Time    string `json:"time" form:"time"` // HH:MM
	Venue   string `json:"venue" form:"venue"`
	Address string `json:"address" form:"address"` // dirección del lugar cuando es fuera de la oficina
	Email   string `json:"email" form:"email"`     // contacto para notificaciones
}

// Registration registro de matrimonio que guarda la API upstream.
type Registration struct {
	ID           string    `json:"id"`
	Number       string    `json:"registration_number"`
	Groom        Person    `json:"groom"`
	Bride        Person    `json:"bride"`
	Schedule     Schedule  `json:"schedule"`
	Status       string    `json:"status"`
	Note         string    `json:"note,omitempty"`
	PenghuluID   string    `json:"penghulu_id,omitempty"`
	PenghuluName string    `json:"penghulu_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Couple devuelve "novio & novia" para los listados.
func (r Registration) Couple() string {
	return r.Groom.FullName + " & " + r.Bride.FullName
}

// Assignment akad agendado de un penghulu.
type Assignment struct {
	ID             string `json:"id"`
	RegistrationID string `json:"registration_id"`
	Number         string `json:"registration_number"`
	Couple         string `json:"couple"`
	PenghuluID     string `json:"penghulu_id"`
	PenghuluName   string `json:"penghulu_name"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Venue          string `json:"venue"`
	Address        string `json:"address,omitempty"`
}

// nextStatuses estados alcanzables desde cada estado.
var nextStatuses = map[string][]string{
	StatusSubmitted: {StatusVerified, StatusRejected},
	StatusVerified:  {StatusScheduled, StatusRejected},
	StatusScheduled: {StatusCompleted},
}

// NextStatuses devuelve las decisiones de revisión disponibles desde status.
func NextStatuses(status string) []string {
	return append([]string(nil), nextStatuses[status]...)
}

// CanTransition indica si se permite from -> to.
func CanTransition(from, to string) bool {
	for _, s := range nextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}
