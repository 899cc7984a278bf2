package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/guard"
	"github.com/jhoicas/simkah-portal/internal/application/ports"
	"github.com/jhoicas/simkah-portal/pkg/config"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

// RouterDeps dependencias para Router.
type RouterDeps struct {
	API     ports.PortalAPI
	Routes  config.RoutesConfig
	Metrics GuardRecorder
	Log     *logger.Logger
	Now     func() time.Time
}

// Router registra las páginas del portal. Debe correr con SessionProvider ya montado.
func Router(app *fiber.App, deps RouterDeps) {
	h := NewHandlers(deps.API, deps.Routes, deps.Now, deps.Log)
	gr := guardRoutes(deps.Routes)

	// Públicas
	app.Get("/", h.Home)
	app.Get("/layanan", h.Services)
	app.Get("/surat", h.Letters)
	app.Get("/jadwal", h.Hours)

	// Auth
	app.Get(deps.Routes.Login, h.LoginPage)
	app.Post(deps.Routes.Login, h.Login)
	app.Post("/logout", h.Logout)

	// Asistente de registro (público; el borrador vive en el storage del cliente)
	daftar := app.Group("/daftar")
	daftar.Get("/", h.RegistrationStart)
	daftar.Get("/konfirmasi", h.RegistrationConfirm)
	daftar.Post("/kirim", h.RegistrationSubmit)
	daftar.Get("/:step", h.RegistrationStep)
	daftar.Post("/:step", h.RegistrationSave)

	// El área staff está dentro del área admin: se registra primero y
	// pasa ambos guards.
	staffHome := strings.TrimRight(deps.Routes.StaffHome, "/")
	staff := app.Group(staffHome,
		RequireGuard(guard.AdminArea(gr), deps.Metrics),
		RequireGuard(guard.StaffArea(gr), deps.Metrics),
	)
	staff.Get("/", h.StaffQueue)
	staff.Get("/registrations/:id", h.StaffRegistration)
	staff.Post("/registrations/:id/status", h.StaffUpdateStatus)

	// Área admin
	admin := app.Group(strings.TrimRight(deps.Routes.AdminHome, "/"), RequireGuard(guard.AdminArea(gr), deps.Metrics))
	admin.Get("/", h.AdminDashboard)
	admin.Get("/registrations", h.AdminRegistrations)
	admin.Get("/registrations/:id", h.AdminRegistration)
	admin.Post("/registrations/:id/status", h.AdminUpdateStatus)
	admin.Get("/users", h.AdminUsers)

	// Área penghulu
	penghulu := app.Group(strings.TrimRight(deps.Routes.PenghuluHome, "/"), RequireGuard(guard.PenghuluArea(gr), deps.Metrics))
	penghulu.Get("/", h.PenghuluSchedule)
}
