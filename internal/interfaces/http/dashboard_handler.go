package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
)

var statusLabels = map[string]string{
	entity.StatusSubmitted: "Diajukan",
	entity.StatusVerified:  "Terverifikasi",
	entity.StatusRejected:  "Ditolak",
	entity.StatusScheduled: "Terjadwal",
	entity.StatusCompleted: "Selesai",
}

type statusOption struct {
	Value string
	Label string
}

type registrationRow struct {
	ID           string
	Number       string
	Couple       string
	Date         string
	Time         string
	Venue        string
	Status       string
	StatusLabel  string
	PenghuluName string
}

func toRows(regs []entity.Registration) []registrationRow {
	out := make([]registrationRow, 0, len(regs))
	for _, r := range regs {
		out = append(out, registrationRow{
			ID:           r.ID,
			Number:       r.Number,
			Couple:       r.Couple(),
			Date:         r.Schedule.Date,
			Time:         r.Schedule.Time,
			Venue:        r.Schedule.Venue,
			Status:       r.Status,
			StatusLabel:  statusLabels[r.Status],
			PenghuluName: r.PenghuluName,
		})
	}
	return out
}

func statusFilters() []statusOption {
	out := []statusOption{}
	for _, s := range []string{entity.StatusSubmitted, entity.StatusVerified, entity.StatusScheduled, entity.StatusCompleted, entity.StatusRejected} {
		out = append(out, statusOption{Value: s, Label: statusLabels[s]})
	}
	return out
}

func nextOptions(status string) []statusOption {
	out := []statusOption{}
	for _, s := range entity.NextStatuses(status) {
		out = append(out, statusOption{Value: s, Label: statusLabels[s]})
	}
	return out
}

// AdminDashboard GET /admin
func (h *Handlers) AdminDashboard(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Dasbor", "Counts": dto.StatusCounts{}}
	regs, err := h.api.ListRegistrations(c.UserContext(), h.token(c), "")
	if err != nil {
		return h.upstreamFailed(c, err, "admin/dashboard", data)
	}
	recent := regs
	if len(recent) > 5 {
		recent = recent[:5]
	}
	data["Counts"] = dto.CountByStatus(regs)
	data["Recent"] = toRows(recent)
	return h.render(c, "admin/dashboard", data)
}

// AdminRegistrations GET /admin/registrations?status=
func (h *Handlers) AdminRegistrations(c *fiber.Ctx) error {
	status := c.Query("status")
	if _, ok := statusLabels[status]; !ok {
		status = ""
	}
	data := fiber.Map{
		"Title":    "Daftar Pendaftaran",
		"Filter":   status,
		"Filters":  statusFilters(),
		"BasePath": "/admin/registrations",
	}
	regs, err := h.api.ListRegistrations(c.UserContext(), h.token(c), status)
	if err != nil {
		return h.upstreamFailed(c, err, "admin/registrations", data)
	}
	data["Rows"] = toRows(regs)
	return h.render(c, "admin/registrations", data)
}

func (h *Handlers) registrationDetail(c *fiber.Ctx, basePath string, extra fiber.Map) error {
	data := fiber.Map{"Title": "Detail Pendaftaran", "BasePath": basePath}
	for k, v := range extra {
		data[k] = v
	}
	reg, err := h.api.GetRegistration(c.UserContext(), h.token(c), c.Params("id"))
	if err != nil {
		return h.upstreamFailed(c, err, "admin/registration", data)
	}
	data["Reg"] = reg
	data["StatusLabel"] = statusLabels[reg.Status]
	data["Options"] = nextOptions(reg.Status)
	data["Fee"] = feeLabel(reg.Schedule.Venue)
	return h.render(c, "admin/registration", data)
}

func (h *Handlers) updateStatus(c *fiber.Ctx, basePath string) error {
	id := c.Params("id")
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulir tidak valid.")
	}
	if err := in.Validate(); err != nil {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.registrationDetail(c, basePath, fiber.Map{"Errors": dto.FieldErrors(err), "Note": in.Note})
	}
	if _, err := h.api.UpdateRegistrationStatus(c.UserContext(), h.token(c), id, in); err != nil {
		return h.upstreamFailed(c, err, "admin/registration", fiber.Map{"Title": "Detail Pendaftaran", "BasePath": basePath})
	}
	return c.Redirect(basePath+"/"+id, fiber.StatusSeeOther)
}

// AdminRegistration GET /admin/registrations/:id
func (h *Handlers) AdminRegistration(c *fiber.Ctx) error {
	return h.registrationDetail(c, "/admin/registrations", nil)
}

// AdminUpdateStatus POST /admin/registrations/:id/status
func (h *Handlers) AdminUpdateStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, "/admin/registrations")
}

// AdminUsers GET /admin/users
func (h *Handlers) AdminUsers(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Pengguna"}
	users, err := h.api.ListUsers(c.UserContext(), h.token(c))
	if err != nil {
		return h.upstreamFailed(c, err, "admin/users", data)
	}
	data["Users"] = users
	return h.render(c, "admin/users", data)
}

// StaffQueue GET <staff home>: registros pendientes de verificación.
func (h *Handlers) StaffQueue(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Antrian Verifikasi", "BasePath": h.routes.StaffHome + "/registrations"}
	regs, err := h.api.ListRegistrations(c.UserContext(), h.token(c), entity.StatusSubmitted)
	if err != nil {
		return h.upstreamFailed(c, err, "staff/queue", data)
	}
	data["Rows"] = toRows(regs)
	return h.render(c, "staff/queue", data)
}

// StaffRegistration GET <staff home>/registrations/:id
func (h *Handlers) StaffRegistration(c *fiber.Ctx) error {
	return h.registrationDetail(c, h.routes.StaffHome+"/registrations", nil)
}

// StaffUpdateStatus POST <staff home>/registrations/:id/status
func (h *Handlers) StaffUpdateStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, h.routes.StaffHome+"/registrations")
}

// PenghuluSchedule GET <penghulu home>: agendas del penghulu autenticado.
func (h *Handlers) PenghuluSchedule(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Jadwal Akad"}
	items, err := h.api.ListSchedules(c.UserContext(), h.token(c))
	if err != nil {
		return h.upstreamFailed(c, err, "penghulu/schedule", data)
	}
	data["Items"] = items
	return h.render(c, "penghulu/schedule", data)
}
