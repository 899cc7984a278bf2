// Package devapi reemplazo en memoria de la API REST de registros que usa el
// portal. Pensado para desarrollo local y tests de integración.
package devapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/simkah-portal/internal/application/auth"
	"github.com/jhoicas/simkah-portal/internal/application/usecase"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/memory"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

// Config configuración de New.
type Config struct {
	JWT  auth.JWTConfig
	Seed []auth.NewAccount
	Now  func() time.Time
	Log  *logger.Logger
}

// Server agrupa la app fiber con sus casos de uso.
type Server struct {
	App  *fiber.App
	Auth *auth.AuthUseCase
	Regs *usecase.RegistrationUseCase
}

// New conecta repositorios, casos de uso y rutas, y crea las cuentas semilla.
func New(cfg Config) (*Server, error) {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("devapi")

	userRepo := memory.NewUserRepository()
	regRepo := memory.NewRegistrationRepository()

	authUC := auth.NewAuthUseCase(userRepo, cfg.JWT)
	regUC := usecase.NewRegistrationUseCase(regRepo, userRepo, cfg.Now)
	userUC := usecase.NewUserUseCase(userRepo)

	for _, a := range cfg.Seed {
		rec, err := authUC.CreateAccount(a)
		if err != nil {
			return nil, err
		}
		log.Info().Str("email", rec.Email).Str("role", rec.Role).Msg("seeded account")
	}

	app := fiber.New(fiber.Config{
		AppName:      "simkah-devapi",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	Router(app, RouterDeps{
		Handler:   NewHandler(authUC, regUC, userUC),
		JWTSecret: cfg.JWT.Secret,
	})
	return &Server{App: app, Auth: authUC, Regs: regUC}, nil
}

// RouterDeps dependencias para Router.
type RouterDeps struct {
	Handler   *Handler
	JWTSecret string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	h := deps.Handler

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "simkah-devapi"})
	})

	// Públicas
	api.Post("/auth/login", h.Login)
	api.Post("/registrations", h.CreateRegistration)

	// Protegidas (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	reviewers := RequireRole(role.NameStaff, role.NameKepalaKUA, role.NameAdministrator, role.NamePenghulu)
	protected.Get("/registrations", reviewers, h.ListRegistrations)
	protected.Get("/registrations/:id", reviewers, h.GetRegistration)
	protected.Patch("/registrations/:id/status", reviewers, h.UpdateRegistrationStatus)
	protected.Get("/schedules", reviewers, h.ListSchedules)

	protected.Get("/users", RequireRole(role.NameKepalaKUA, role.NameAdministrator), h.ListUsers)
}

// DefaultSeed una cuenta por rol reconocido. Contraseña "simkah123".
func DefaultSeed() []auth.NewAccount {
	const pw = "simkah123"
	return []auth.NewAccount{
		{Name: "Rina Staf", Email: "staff@kua.example", Password: pw, Role: role.NameStaff},
		{Name: "H. Abdul Kepala", Email: "kepala@kua.example", Password: pw, Role: role.NameKepalaKUA},
		{Name: "Admin SIMKAH", Email: "admin@kua.example", Password: pw, Role: role.NameAdministrator},
		{Name: "Ustadz Ahmad", Email: "penghulu@kua.example", Password: pw, Role: role.NamePenghulu},
	}
}
