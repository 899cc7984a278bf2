package devapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/auth"
	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/application/usecase"
	"github.com/jhoicas/simkah-portal/internal/domain"
)

// Handler sirve la API de registros.
type Handler struct {
	auth  *auth.AuthUseCase
	regs  *usecase.RegistrationUseCase
	users *usecase.UserUseCase
}

// NewHandler construye el handler.
func NewHandler(a *auth.AuthUseCase, regs *usecase.RegistrationUseCase, users *usecase.UserUseCase) *Handler {
	return &Handler{auth: a, regs: regs, users: users}
}

// Login POST /auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.auth.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateRegistration POST /registrations (público)
func (h *Handler) CreateRegistration(c *fiber.Ctx) error {
	var in dto.RegistrationDraft
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	out, err := h.regs.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRegistrations GET /registrations?status=
func (h *Handler) ListRegistrations(c *fiber.Ctx) error {
	items, err := h.regs.List(actor(c), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RegistrationListResponse{Items: items})
}

// GetRegistration GET /registrations/:id
func (h *Handler) GetRegistration(c *fiber.Ctx) error {
	reg, err := h.regs.Get(actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(reg)
}

// UpdateRegistrationStatus PATCH /registrations/:id/status
func (h *Handler) UpdateRegistrationStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	reg, err := h.regs.UpdateStatus(actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(reg)
}

// ListUsers GET /users
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	items, err := h.users.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UserListResponse{Items: items})
}

// ListSchedules GET /schedules
func (h *Handler) ListSchedules(c *fiber.Ctx) error {
	items, err := h.regs.Schedules(actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AssignmentListResponse{Items: items})
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "email atau kata sandi salah"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "akses ditolak"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "data tidak ditemukan"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "data tidak valid",
			Fields:  dto.FieldErrors(err),
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
