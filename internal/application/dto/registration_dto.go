package dto

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/simkah-portal/internal/domain/content"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
)

// MinMarriageAge edad mínima legal para ambos solicitantes.
const MinMarriageAge = 19

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Pasos del formulario de registro, en orden.
const (
	StepGroom    = "suami"
	StepBride    = "istri"
	StepSchedule = "jadwal"
	StepConfirm  = "konfirmasi"
)

// Steps pasos de captura en el orden en que se llenan.
var Steps = []string{StepGroom, StepBride, StepSchedule}

var (
	nikRe   = regexp.MustCompile(`^[0-9]{16}$`)
	phoneRe = regexp.MustCompile(`^(\+62|0)[0-9]{8,13}$`)
)

// RegistrationDraft estado del formulario multipaso que guarda el cliente entre pasos.
type RegistrationDraft struct {
	Groom    entity.Person   `json:"groom"`
	Bride    entity.Person   `json:"bride"`
	Schedule entity.Schedule `json:"schedule"`
}

// ValidatePerson valida un solicitante a la fecha now.
func ValidatePerson(p entity.Person, now time.Time) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FullName, validation.Required.Error("nama lengkap wajib diisi"), validation.Length(3, 120)),
		validation.Field(&p.NIK,
			validation.Required.Error("NIK wajib diisi"),
			validation.Match(nikRe).Error("NIK harus 16 digit angka"),
		),
		validation.Field(&p.BirthPlace, validation.Required.Error("tempat lahir wajib diisi"), validation.Length(2, 80)),
		validation.Field(&p.BirthDate,
			validation.Required.Error("tanggal lahir wajib diisi"),
			validation.Date(dateLayout).Error("format tanggal harus YYYY-MM-DD"),
			validation.By(minAge(MinMarriageAge, now)),
		),
		validation.Field(&p.Occupation, validation.Length(0, 80)),
		validation.Field(&p.Address, validation.Required.Error("alamat wajib diisi"), validation.Length(5, 300)),
		validation.Field(&p.Phone,
			validation.Required.Error("nomor telepon wajib diisi"),
			validation.Match(phoneRe).Error("nomor telepon tidak valid"),
		),
		validation.Field(&p.FatherName, validation.Required.Error("nama ayah wajib diisi"), validation.Length(3, 120)),
		validation.Field(&p.MaritalStatus,
			validation.Required.Error("status perkawinan wajib dipilih"),
			validation.In(entity.MaritalSingle, entity.MaritalDivorced, entity.MaritalWidowed).Error("status perkawinan tidak dikenal"),
		),
	)
}

// ValidateSchedule valida la agenda del akad a la fecha now.
func ValidateSchedule(s entity.Schedule, now time.Time) error {
	addressRules := []validation.Rule{validation.Length(0, 300)}
	if s.Venue == content.VenueLuarKUA {
		addressRules = append(addressRules, validation.Required.Error("alamat akad wajib diisi untuk nikah di luar KUA"))
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.Date,
			validation.Required.Error("tanggal akad wajib diisi"),
			validation.Date(dateLayout).Error("format tanggal harus YYYY-MM-DD"),
			validation.By(notBefore(now)),
		),
		validation.Field(&s.Time,
			validation.Required.Error("jam akad wajib diisi"),
			validation.Date(timeLayout).Error("format jam harus HH:MM"),
		),
		validation.Field(&s.Venue,
			validation.Required.Error("tempat akad wajib dipilih"),
			validation.In(content.VenueKUA, content.VenueLuarKUA).Error("tempat akad tidak dikenal"),
		),
		validation.Field(&s.Address, addressRules...),
		validation.Field(&s.Email, is.Email.Error("format email tidak valid")),
	)
}

// ValidateStep valida la parte del borrador que llena un paso.
func (d RegistrationDraft) ValidateStep(step string, now time.Time) error {
	switch step {
	case StepGroom:
		return ValidatePerson(d.Groom, now)
	case StepBride:
		return ValidatePerson(d.Bride, now)
	case StepSchedule:
		return ValidateSchedule(d.Schedule, now)
	default:
		return ErrUnknownStep
	}
}

// FirstIncompleteStep devuelve el primer paso que no valida, o StepConfirm
// si el borrador está completo.
func (d RegistrationDraft) FirstIncompleteStep(now time.Time) string {
	for _, step := range Steps {
		if d.ValidateStep(step, now) != nil {
			return step
		}
	}
	return StepConfirm
}

// ErrUnknownStep paso fuera de Steps.
var ErrUnknownStep = errors.New("langkah pendaftaran tidak dikenal")

// RegistrationResponse respuesta upstream a un registro nuevo.
type RegistrationResponse struct {
	ID     string `json:"id"`
	Number string `json:"registration_number"`
	Status string `json:"status"`
}

// RegistrationListResponse listado de registros upstream.
type RegistrationListResponse struct {
	Items []entity.Registration `json:"items"`
}

// AssignmentListResponse listado de agendas upstream.
type AssignmentListResponse struct {
	Items []entity.Assignment `json:"items"`
}

// StatusUpdateRequest cambio de estado de un registro desde los tableros.
type StatusUpdateRequest struct {
	Status string `json:"status" form:"status"`
	Note   string `json:"note" form:"note"`
}

// Validate valida el cambio de estado. Un rechazo debe decir por qué.
func (r StatusUpdateRequest) Validate() error {
	noteRules := []validation.Rule{validation.Length(0, 500)}
	if r.Status == entity.StatusRejected {
		noteRules = append(noteRules, validation.Required.Error("alasan penolakan wajib diisi"))
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status wajib dipilih"),
			validation.In(entity.StatusVerified, entity.StatusRejected, entity.StatusScheduled, entity.StatusCompleted).
				Error("status tidak dikenal"),
		),
		validation.Field(&r.Note, noteRules...),
	)
}

// StatusCounts resumen de registros para el tablero.
type StatusCounts struct {
	Total     int
	Submitted int
	Verified  int
	Rejected  int
	Scheduled int
	Completed int
}

// CountByStatus cuenta regs por estado.
func CountByStatus(regs []entity.Registration) StatusCounts {
	c := StatusCounts{Total: len(regs)}
	for _, r := range regs {
		switch r.Status {
		case entity.StatusSubmitted:
			c.Submitted++
		case entity.StatusVerified:
			c.Verified++
		case entity.StatusRejected:
			c.Rejected++
		case entity.StatusScheduled:
			c.Scheduled++
		case entity.StatusCompleted:
			c.Completed++
		}
	}
	return c
}

func minAge(years int, now time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		born, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil // el formato lo reporta la regla Date
		}
		if born.AddDate(years, 0, 0).After(now) {
			return errors.New("usia minimal 19 tahun")
		}
		return nil
	}
}

func notBefore(now time.Time) validation.RuleFunc {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return func(value interface{}) error {
		s, _ := value.(string)
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil
		}
		if d.Before(today) {
			return errors.New("tanggal akad tidak boleh di masa lalu")
		}
		return nil
	}
}
