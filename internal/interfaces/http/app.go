package http

import (
	"embed"
	"errors"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/django/v3"
	"github.com/google/uuid"

	"github.com/jhoicas/simkah-portal/internal/application/guard"
	"github.com/jhoicas/simkah-portal/internal/application/ports"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/metrics"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/storage"
	"github.com/jhoicas/simkah-portal/pkg/config"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

//go:embed views
var viewsFS embed.FS

const layoutMain = "layouts/main"

// AppDeps dependencias de la aplicación del portal.
type AppDeps struct {
	Name    string
	API     ports.PortalAPI
	Routes  config.RoutesConfig
	Cookies storage.CookieOptions
	Metrics *metrics.Metrics
	Log     *logger.Logger
	// Now reloj de la validación de formularios; por defecto time.Now.
	Now func() time.Time
	// Storage reemplaza el storage de cookies del cliente (tests).
	Storage func(c *fiber.Ctx) storage.Storage
}

// NewViews construye el motor de vistas django sobre las plantillas embebidas.
func NewViews() (*django.Engine, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}
	return django.NewFileSystem(nethttp.FS(sub), ".django"), nil
}

// NewApp construye el portal con sus middlewares, vistas y rutas.
func NewApp(deps AppDeps) (*fiber.App, error) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Name == "" {
		deps.Name = "simkah-portal"
	}
	views, err := NewViews()
	if err != nil {
		return nil, err
	}
	log := deps.Log.Component("http")

	app := fiber.New(fiber.Config{
		AppName:      deps.Name,
		Views:        views,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))
	app.Use(deps.Metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Name})
	})
	app.Get("/metrics", deps.Metrics.Handler())

	app.Use(SessionProvider(ProviderConfig{
		Cookies:   deps.Cookies,
		LoginPath: deps.Routes.Login,
		Log:       deps.Log,
		Storage:   deps.Storage,
	}))

	Router(app, RouterDeps{
		API:     deps.API,
		Routes:  deps.Routes,
		Metrics: deps.Metrics,
		Log:     log,
		Now:     deps.Now,
	})
	return app, nil
}

// ErrorHandler renderiza la página de error con el código del error fiber.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Terjadi kesalahan pada server."
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code == fiber.StatusNotFound {
			msg = "Halaman tidak ditemukan."
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		c.Status(code)
		if rerr := c.Render("error", fiber.Map{"Title": "Kesalahan", "Code": code, "Message": msg}, layoutMain); rerr != nil {
			return c.SendString(msg)
		}
		return nil
	}
}

func homes(r config.RoutesConfig) role.Homes {
	return role.Homes{Public: "/", Admin: r.AdminHome, Staff: r.StaffHome, Penghulu: r.PenghuluHome}
}

func guardRoutes(r config.RoutesConfig) guard.Routes {
	return guard.Routes{Login: r.Login, StaffHome: r.StaffHome, PenghuluHome: r.PenghuluHome}
}
