package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/content"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/storage"
)

// KeyDraft clave del borrador de registro en el storage del cliente.
const KeyDraft = "registration_draft"

var stepTitles = map[string]string{
	dto.StepGroom:    "Data Calon Suami",
	dto.StepBride:    "Data Calon Istri",
	dto.StepSchedule: "Jadwal dan Tempat Akad",
	dto.StepConfirm:  "Konfirmasi",
}

func nextStep(step string) string {
	for i, s := range dto.Steps {
		if s == step && i+1 < len(dto.Steps) {
			return dto.Steps[i+1]
		}
	}
	return dto.StepConfirm
}

func stepPath(step string) string {
	return "/daftar/" + step
}

func knownStep(step string) bool {
	for _, s := range dto.Steps {
		if s == step {
			return true
		}
	}
	return false
}

func draftStorage(c *fiber.Ctx) storage.Storage {
	scope := ScopeFrom(c)
	if scope == nil {
		panic(domain.ErrNoProvider)
	}
	return scope.Storage
}

// loadDraft lee el borrador; uno ilegible se descarta.
func (h *Handlers) loadDraft(c *fiber.Ctx) dto.RegistrationDraft {
	kv := draftStorage(c)
	var d dto.RegistrationDraft
	raw, ok := kv.Get(KeyDraft)
	if !ok {
		return d
	}
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		h.log.Warn().Err(err).Msg("discarding unreadable registration draft")
		kv.Remove(KeyDraft)
		return dto.RegistrationDraft{}
	}
	return d
}

func (h *Handlers) saveDraft(c *fiber.Ctx, d dto.RegistrationDraft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return draftStorage(c).Set(KeyDraft, string(raw))
}

func (h *Handlers) stepData(step string, d dto.RegistrationDraft) fiber.Map {
	data := fiber.Map{
		"Title":     stepTitles[step],
		"Step":      step,
		"StepIndex": 0,
		"Steps":     dto.Steps,
		"Action":    stepPath(step),
		"Draft":     d,
		"VenueKUA":  content.VenueKUA,
		"VenueLuar": content.VenueLuarKUA,
	}
	for i, s := range dto.Steps {
		if s == step {
			data["StepIndex"] = i + 1
		}
	}
	switch step {
	case dto.StepGroom:
		data["IsPerson"] = true
		data["Person"] = d.Groom
	case dto.StepBride:
		data["IsPerson"] = true
		data["Person"] = d.Bride
	case dto.StepSchedule:
		data["Schedule"] = d.Schedule
		data["FeeOutside"] = content.FormatRupiah(content.FeeForVenue(content.VenueLuarKUA))
	}
	return data
}

// RegistrationStart GET /daftar
func (h *Handlers) RegistrationStart(c *fiber.Ctx) error {
	return c.Redirect(stepPath(dto.Steps[0]), fiber.StatusFound)
}

// RegistrationStep GET /daftar/:step
func (h *Handlers) RegistrationStep(c *fiber.Ctx) error {
	step := c.Params("step")
	if !knownStep(step) {
		return fiber.ErrNotFound
	}
	return h.render(c, "daftar/step", h.stepData(step, h.loadDraft(c)))
}

// RegistrationSave POST /daftar/:step guarda el paso y avanza si valida.
func (h *Handlers) RegistrationSave(c *fiber.Ctx) error {
	step := c.Params("step")
	if !knownStep(step) {
		return fiber.ErrNotFound
	}
	d := h.loadDraft(c)

	switch step {
	case dto.StepGroom, dto.StepBride:
		var p entity.Person
		if err := c.BodyParser(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Formulir tidak valid.")
		}
		if step == dto.StepGroom {
			d.Groom = p
		} else {
			d.Bride = p
		}
	case dto.StepSchedule:
		var s entity.Schedule
		if err := c.BodyParser(&s); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Formulir tidak valid.")
		}
		if s.Venue != content.VenueLuarKUA {
			s.Address = ""
		}
		d.Schedule = s
	}

	if err := h.saveDraft(c, d); err != nil {
		h.log.Warn().Err(err).Msg("registration draft not stored")
		data := h.stepData(step, d)
		data["Error"] = "Data terlalu panjang untuk disimpan. Persingkat isian Anda."
		c.Status(fiber.StatusRequestEntityTooLarge)
		return h.render(c, "daftar/step", data)
	}

	if err := d.ValidateStep(step, h.now()); err != nil {
		data := h.stepData(step, d)
		data["Errors"] = dto.FieldErrors(err)
		c.Status(fiber.StatusUnprocessableEntity)
		return h.render(c, "daftar/step", data)
	}
	return c.Redirect(stepPath(nextStep(step)), fiber.StatusSeeOther)
}

func (h *Handlers) confirmData(d dto.RegistrationDraft) fiber.Map {
	return fiber.Map{
		"Title":      stepTitles[dto.StepConfirm],
		"Step":       dto.StepConfirm,
		"StepIndex":  len(dto.Steps) + 1,
		"Steps":      dto.Steps,
		"Draft":      d,
		"OutsideKUA": d.Schedule.Venue == content.VenueLuarKUA,
		"Fee":        feeLabel(d.Schedule.Venue),
	}
}

func feeLabel(venue string) string {
	fee := content.FeeForVenue(venue)
	if fee.IsZero() {
		return "Gratis"
	}
	return content.FormatRupiah(fee)
}

// RegistrationConfirm GET /daftar/konfirmasi
func (h *Handlers) RegistrationConfirm(c *fiber.Ctx) error {
	d := h.loadDraft(c)
	if step := d.FirstIncompleteStep(h.now()); step != dto.StepConfirm {
		return c.Redirect(stepPath(step), fiber.StatusFound)
	}
	return h.render(c, "daftar/konfirmasi", h.confirmData(d))
}

// RegistrationSubmit POST /daftar/kirim envía el borrador upstream y lo limpia.
func (h *Handlers) RegistrationSubmit(c *fiber.Ctx) error {
	d := h.loadDraft(c)
	if step := d.FirstIncompleteStep(h.now()); step != dto.StepConfirm {
		return c.Redirect(stepPath(step), fiber.StatusSeeOther)
	}

	out, err := h.api.CreateRegistration(c.UserContext(), d)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// endpoint público; un 401 aquí es mala configuración upstream
			err = domain.ErrUpstream
		}
		return h.upstreamFailed(c, err, "daftar/konfirmasi", h.confirmData(d))
	}

	draftStorage(c).Remove(KeyDraft)
	h.log.Info().Str("registration_number", out.Number).Msg("registration submitted")
	return h.render(c, "daftar/selesai", fiber.Map{
		"Title":    "Pendaftaran Terkirim",
		"Number":   out.Number,
		"Status":   out.Status,
		"Schedule": d.Schedule,
		"Fee":      feeLabel(d.Schedule.Venue),
	})
}
