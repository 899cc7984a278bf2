package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/ports"
	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
	"github.com/jhoicas/simkah-portal/pkg/config"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

// Handlers sirve las páginas del portal.
type Handlers struct {
	api    ports.PortalAPI
	routes config.RoutesConfig
	homes  role.Homes
	now    func() time.Time
	log    *logger.Logger
}

// NewHandlers construye los handlers de páginas.
func NewHandlers(api ports.PortalAPI, routes config.RoutesConfig, now func() time.Time, log *logger.Logger) *Handlers {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{api: api, routes: routes, homes: homes(routes), now: now, log: log}
}

// render agrega el usuario autenticado a data y renderiza name dentro del layout principal.
func (h *Handlers) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if m := SessionFrom(c); m != nil {
		s := m.Snapshot()
		data["User"] = s.User
		data["Role"] = s.Role.String()
		data["SignedIn"] = s.Authenticated()
		data["IsAdmin"] = s.Role == role.KepalaKUA || s.Role == role.Administrator
		data["IsStaff"] = s.Role.IsStaffOnly()
		data["IsPenghulu"] = s.Role.IsPenghulu()
	}
	data["Path"] = c.Path()
	return c.Render(name, data, layoutMain)
}

// token devuelve el bearer token de la sesión actual.
func (h *Handlers) token(c *fiber.Ctx) string {
	if m := SessionFrom(c); m != nil {
		return m.Snapshot().Token
	}
	return ""
}

// upstreamFailed renderiza page con un panel de error. Un token rechazado
// cierra la sesión y manda al usuario al login.
func (h *Handlers) upstreamFailed(c *fiber.Ctx, err error, page string, data fiber.Map) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		scope := ScopeFrom(c)
		if scope == nil {
			panic(domain.ErrNoProvider)
		}
		h.log.Warn().Str("path", c.Path()).Msg("upstream refused token, signing out")
		scope.Machine.Logout()
		return c.Redirect(scope.Nav.Target(), fiber.StatusFound)
	}

	status, msg := fiber.StatusBadGateway, "Layanan pendaftaran sedang tidak dapat dihubungi. Silakan coba lagi."
	switch {
	case errors.Is(err, domain.ErrForbidden):
		status, msg = fiber.StatusForbidden, "Anda tidak memiliki akses ke data ini."
	case errors.Is(err, domain.ErrNotFound):
		status, msg = fiber.StatusNotFound, "Data tidak ditemukan."
	case errors.Is(err, domain.ErrConflict):
		status, msg = fiber.StatusConflict, "Status pendaftaran sudah berubah. Muat ulang halaman."
	case errors.Is(err, domain.ErrInvalidInput):
		status, msg = fiber.StatusUnprocessableEntity, "Data yang dikirim tidak valid."
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("upstream call failed")
	}
	if data == nil {
		data = fiber.Map{}
	}
	data["Error"] = msg
	c.Status(status)
	return h.render(c, page, data)
}
