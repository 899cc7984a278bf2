package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simkah-portal/internal/application/credentials"
	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/application/guard"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	apphttp "github.com/jhoicas/simkah-portal/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Public pages
// ──────────────────────────────────────────────────────────────────────────────

func TestPublicPages(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	resp, body := b.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Selamat datang")

	resp, body = b.get("/layanan")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Rp 600.000")
	assert.Contains(t, body, "Gratis")

	resp, body = b.get("/surat")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Surat Pengantar Perkawinan")

	resp, body = b.get("/jadwal")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Tutup")

	resp, _ = b.get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = b.get("/tidak-ada")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard scenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAnonymous_ProtectedAreasRedirectToLogin(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	for _, path := range []string{"/admin", "/admin/users", "/admin/staff", "/penghulu"} {
		resp, _ := b.get(path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", location(resp), path)
	}
}

func TestStaff_LandsOnStaffHomeAndIsConfined(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	resp := b.login("staff@kua.example")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/staff", location(resp))
	assert.True(t, b.has(credentials.KeyUser))
	assert.True(t, b.has(credentials.KeyToken))

	resp, body := b.get("/admin/staff")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Antrian Verifikasi")

	for _, path := range []string{"/admin", "/admin/users", "/admin/registrations"} {
		resp, _ = b.get(path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/admin/staff", location(resp), path)
	}

	resp, _ = b.get("/penghulu")
	assert.Equal(t, "/login", location(resp))
}

func TestPenghulu_AllowedInAdminAreaButNotStaffArea(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	resp := b.login("penghulu@kua.example")
	assert.Equal(t, "/penghulu", location(resp))

	resp, body := b.get("/penghulu")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Jadwal Akad")

	resp, _ = b.get("/admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = b.get("/admin/staff")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(resp))
}

func TestAdministrator_Dashboards(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	resp := b.login("admin@kua.example")
	assert.Equal(t, "/admin", location(resp))

	resp, body := b.get("/admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Belum ada pendaftaran")

	resp, body = b.get("/admin/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "penghulu@kua.example")

	resp, _ = b.get("/penghulu")
	assert.Equal(t, "/login", location(resp))

	// A signed-in visit to the login page goes home.
	resp, _ = b.get("/login")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", location(resp))
}

func TestCorruptedUserWithValidToken_IsAnonymousAndPurged(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	out, err := e.dev.Auth.Login(dto.LoginRequest{Email: "admin@kua.example", Password: password})
	require.NoError(t, err)
	b.set(credentials.KeyToken, out.Token)
	b.set(credentials.KeyUser, "{not json")

	resp, _ := b.get("/admin")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(resp))
	assert.False(t, b.has(credentials.KeyUser), "user cookie purged")
	assert.False(t, b.has(credentials.KeyToken), "token cookie purged")
}

func TestUndecodableCookie_IsAnonymousAndPurged(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.setRaw(cookiePrefix+credentials.KeyUser, "%%%")
	b.set(credentials.KeyToken, "tok")

	resp, _ := b.get("/admin")
	assert.Equal(t, "/login", location(resp))
	assert.False(t, b.has(credentials.KeyToken))
}

func TestUnknownRole_HasNoCapability(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	raw, err := json.Marshal(entity.UserRecord{ID: "g1", DisplayName: "Tamu", Role: "guest"})
	require.NoError(t, err)
	b.set(credentials.KeyUser, string(raw))
	b.set(credentials.KeyToken, "tok")

	for _, path := range []string{"/admin", "/admin/staff", "/penghulu"} {
		resp, _ := b.get(path)
		assert.Equal(t, "/login", location(resp), path)
	}
	assert.True(t, b.has(credentials.KeyUser), "a well-formed record is kept")
}

func TestStaleToken_LogsOut(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	raw, err := json.Marshal(entity.UserRecord{ID: "a1", DisplayName: "Admin", Role: "administrator"})
	require.NoError(t, err)
	b.set(credentials.KeyUser, string(raw))
	b.set(credentials.KeyToken, "expired.or.forged")

	resp, _ := b.get("/admin")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(resp))
	assert.False(t, b.has(credentials.KeyUser))
	assert.False(t, b.has(credentials.KeyToken))
}

func TestLogout_ClearsStorage(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.login("kepala@kua.example")
	require.True(t, b.has(credentials.KeyToken))

	resp, _ := b.post("/logout", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(resp))
	assert.False(t, b.has(credentials.KeyUser))
	assert.False(t, b.has(credentials.KeyToken))

	resp, _ = b.get("/admin")
	assert.Equal(t, "/login", location(resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Login form
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ValidationAndBadCredentials(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)

	resp, body := b.post("/login", url.Values{"email": {"bukan-email"}, "password": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "format email tidak valid")
	assert.Contains(t, body, "kata sandi wajib diisi")

	resp, body = b.post("/login", url.Values{"email": {"admin@kua.example"}, "password": {"salah"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Email atau kata sandi salah")
	assert.False(t, b.has(credentials.KeyToken))
}

// ──────────────────────────────────────────────────────────────────────────────
// Registration wizard through review
// ──────────────────────────────────────────────────────────────────────────────

func personForm(name, nik string) url.Values {
	return url.Values{
		"full_name":      {name},
		"nik":            {nik},
		"birth_place":    {"Bandung"},
		"birth_date":     {"1999-01-01"},
		"occupation":     {"Guru"},
		"address":        {"Jl. Merdeka No. 10, Bandung"},
		"phone":          {"081234567890"},
		"father_name":    {"Abdullah"},
		"marital_status": {entity.MaritalSingle},
	}
}

func TestRegistrationWizard_SubmitAndReview(t *testing.T) {
	e := newEnv(t)
	applicant := e.browser(t)

	resp, _ := applicant.get("/daftar")
	assert.Equal(t, "/daftar/suami", location(resp))

	resp, _ = applicant.get("/daftar/konfirmasi")
	assert.Equal(t, "/daftar/suami", location(resp), "incomplete draft goes back to the first step")

	resp, _ = applicant.post("/daftar/suami", personForm("Muhammad Rizki", "3273010101990001"))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/daftar/istri", location(resp))
	assert.True(t, applicant.has(apphttp.KeyDraft))

	resp, _ = applicant.post("/daftar/istri", personForm("Aisyah Putri", "3273014101000002"))
	assert.Equal(t, "/daftar/jadwal", location(resp))

	resp, body := applicant.post("/daftar/jadwal", url.Values{"date": {"2026-04-18"}, "time": {"09:00"}, "venue": {"luar_kua"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "alamat akad wajib diisi")

	resp, _ = applicant.post("/daftar/jadwal", url.Values{
		"date": {"2026-04-18"}, "time": {"09:00"}, "venue": {"luar_kua"}, "address": {"Masjid Agung Bandung"},
	})
	assert.Equal(t, "/daftar/konfirmasi", location(resp))

	resp, body = applicant.get("/daftar/konfirmasi")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Muhammad Rizki")
	assert.Contains(t, body, "Rp 600.000")

	resp, body = applicant.post("/daftar/kirim", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "KUA-20260310-0001")
	assert.False(t, applicant.has(apphttp.KeyDraft), "draft cleared after submit")

	// Staff verifies it from the queue.
	staff := e.browser(t)
	staff.login("staff@kua.example")
	resp, body = staff.get("/admin/staff")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "KUA-20260310-0001")

	regs, err := e.dev.Regs.List(adminActor(), "")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	id := regs[0].ID

	resp, body = staff.post("/admin/staff/registrations/"+id+"/status", url.Values{"status": {entity.StatusRejected}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "alasan penolakan wajib diisi")

	resp, _ = staff.post("/admin/staff/registrations/"+id+"/status", url.Values{"status": {entity.StatusVerified}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/staff/registrations/"+id, location(resp))

	// Kepala KUA schedules it; the penghulu then sees it.
	kepala := e.browser(t)
	kepala.login("kepala@kua.example")
	resp, _ = kepala.post("/admin/registrations/"+id+"/status", url.Values{"status": {entity.StatusScheduled}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, body = kepala.post("/admin/registrations/"+id+"/status", url.Values{"status": {entity.StatusVerified}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "Status pendaftaran sudah berubah")

	penghulu := e.browser(t)
	penghulu.login("penghulu@kua.example")
	resp, body = penghulu.get("/penghulu")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Muhammad Rizki &amp; Aisyah Putri")
}

func TestRegistrationStep_Unknown(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	resp, _ := b.get("/daftar/lainnya")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegistrationDraft_UnreadableIsDropped(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.set(apphttp.KeyDraft, "{broken")

	resp, body := b.get("/daftar/suami")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Data Calon Suami")
	assert.False(t, b.has(apphttp.KeyDraft))
}

// ──────────────────────────────────────────────────────────────────────────────
// Provider wiring and metrics
// ──────────────────────────────────────────────────────────────────────────────

func TestGuardWithoutProvider_Fails(t *testing.T) {
	app := fiber.New()
	app.Use(recover.New())
	app.Get("/admin", apphttp.RequireGuard(guard.AdminArea(guard.Routes{Login: "/login"}), nil), func(c *fiber.Ctx) error {
		return c.SendString("secret")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMetrics_CountGuardDecisions(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.get("/admin")

	n, err := testutil.GatherAndCount(e.metrics.Registry(), "simkah_guard_decisions_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)

	resp, body := b.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, "simkah_http_requests_total"))
}
