package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
)

// LoginPage GET /login. Un usuario autenticado va a su página de inicio.
func (h *Handlers) LoginPage(c *fiber.Ctx) error {
	if m := SessionFrom(c); m != nil {
		if s := m.Snapshot(); s.Authenticated() {
			return c.Redirect(h.homes.Home(s.Role), fiber.StatusFound)
		}
	}
	return h.render(c, "login", fiber.Map{"Title": "Masuk"})
}

// Login POST /login
func (h *Handlers) Login(c *fiber.Ctx) error {
	m := SessionFrom(c)
	if m == nil {
		panic(domain.ErrNoProvider)
	}

	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Formulir tidak valid.")
	}
	data := fiber.Map{"Title": "Masuk", "Email": in.Email}

	if err := in.Validate(); err != nil {
		data["Errors"] = dto.FieldErrors(err)
		c.Status(fiber.StatusUnprocessableEntity)
		return h.render(c, "login", data)
	}

	out, err := h.api.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidInput):
			data["Error"] = "Email atau kata sandi salah."
			c.Status(fiber.StatusUnauthorized)
		case errors.Is(err, domain.ErrForbidden):
			data["Error"] = "Akun Anda tidak aktif."
			c.Status(fiber.StatusForbidden)
		default:
			h.log.Error().Err(err).Msg("login failed")
			data["Error"] = "Layanan sedang tidak dapat dihubungi. Silakan coba lagi."
			c.Status(fiber.StatusBadGateway)
		}
		return h.render(c, "login", data)
	}

	if err := m.Login(out.User, out.Token); err != nil {
		h.log.Error().Err(err).Msg("upstream login response rejected")
		data["Error"] = "Layanan sedang tidak dapat dihubungi. Silakan coba lagi."
		c.Status(fiber.StatusBadGateway)
		return h.render(c, "login", data)
	}
	return c.Redirect(h.homes.Home(role.Parse(out.User.Role)), fiber.StatusFound)
}

// Logout POST /logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	scope := ScopeFrom(c)
	if scope == nil {
		panic(domain.ErrNoProvider)
	}
	scope.Machine.Logout()
	return c.Redirect(scope.Nav.Target(), fiber.StatusFound)
}
