package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simkah-portal/internal/application/auth"
	"github.com/jhoicas/simkah-portal/internal/application/usecase"
	"github.com/jhoicas/simkah-portal/internal/devapi"
	"github.com/jhoicas/simkah-portal/internal/domain/role"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/metrics"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/storage"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/upstream"
	apphttp "github.com/jhoicas/simkah-portal/internal/interfaces/http"
	"github.com/jhoicas/simkah-portal/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	cookiePrefix = "simkah_"
	password     = "simkah123"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

var routes = config.RoutesConfig{
	Login:        "/login",
	AdminHome:    "/admin",
	StaffHome:    "/admin/staff",
	PenghuluHome: "/penghulu",
}

type env struct {
	app     *fiber.App
	dev     *devapi.Server
	metrics *metrics.Metrics
}

// newEnv serves the dev API over HTTP and builds a portal that talks to it.
func newEnv(t *testing.T) *env {
	t.Helper()
	dev, err := devapi.New(devapi.Config{
		JWT:  auth.JWTConfig{Secret: "integration-secret", ExpMinutes: 60, Issuer: "test"},
		Seed: devapi.DefaultSeed(),
		Now:  func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	srv := httptest.NewServer(adaptor.FiberApp(dev.App))
	t.Cleanup(srv.Close)

	m := metrics.New()
	app, err := apphttp.NewApp(apphttp.AppDeps{
		API:     upstream.NewClient(srv.URL+"/api", 5*time.Second, nil, m),
		Routes:  routes,
		Cookies: storage.CookieOptions{Prefix: cookiePrefix, MaxAge: 3600},
		Metrics: m,
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return &env{app: app, dev: dev, metrics: m}
}

// browser keeps cookies between requests the way a user agent would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func (e *env) browser(t *testing.T) *browser {
	return &browser{t: t, app: e.app, cookies: map[string]string{}}
}

func (b *browser) setRaw(name, value string) {
	b.cookies[name] = value
}

// set stores value under key the way the portal encodes it.
func (b *browser) set(key, value string) {
	b.cookies[cookiePrefix+key] = storage.EncodeValue(value)
}

func (b *browser) has(key string) bool {
	_, ok := b.cookies[cookiePrefix+key]
	return ok
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	resp.Body.Close()

	for _, c := range resp.Cookies() {
		expired := c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now()))
		if expired || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) login(email string) *http.Response {
	b.t.Helper()
	resp, _ := b.post("/login", url.Values{"email": {email}, "password": {password}})
	return resp
}

func location(resp *http.Response) string {
	return resp.Header.Get("Location")
}

func adminActor() usecase.Actor {
	return usecase.Actor{UserID: "test-admin", Role: role.Administrator}
}
