package storage_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simkah-portal/internal/infrastructure/storage"
)

func TestMemoryStorage(t *testing.T) {
	s := storage.NewMemoryStorage()

	_, ok := s.Get("token")
	assert.False(t, ok)

	require.NoError(t, s.Set("token", "abc"))
	v, ok := s.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.Equal(t, 1, s.Len())

	s.Remove("token")
	_, ok = s.Get("token")
	assert.False(t, ok)
	s.Remove("token") // removing twice is fine
	assert.Zero(t, s.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// CookieStorage
// ──────────────────────────────────────────────────────────────────────────────

var testOpts = storage.CookieOptions{Prefix: "simkah_", MaxAge: 3600}

func cookieApp(handler func(s *storage.CookieStorage) string) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(handler(storage.NewCookieStorage(c, testOpts)))
	})
	return app
}

func responseCookies(resp *http.Response) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, ck := range resp.Cookies() {
		out[ck.Name] = ck
	}
	return out
}

func TestCookieStorage_ReadsEncodedRequestCookie(t *testing.T) {
	app := cookieApp(func(s *storage.CookieStorage) string {
		v, ok := s.Get("user")
		if !ok {
			return "absent"
		}
		return v
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "simkah_user="+storage.EncodeValue(`{"id":"1"}`))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Equal(t, `{"id":"1"}`, body)
}

func TestCookieStorage_MissingCookieIsAbsent(t *testing.T) {
	app := cookieApp(func(s *storage.CookieStorage) string {
		_, ok := s.Get("token")
		if ok {
			return "present"
		}
		return "absent"
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "absent", readBody(t, resp))
}

func TestCookieStorage_UndecodableCookieIsPresentButEmpty(t *testing.T) {
	app := cookieApp(func(s *storage.CookieStorage) string {
		v, ok := s.Get("user")
		if ok && v == "" {
			return "corrupt"
		}
		return "other"
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "simkah_user=%%%not-base64%%%")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "corrupt", readBody(t, resp))
}

func TestCookieStorage_SetWritesCookieAndIsReadBack(t *testing.T) {
	app := cookieApp(func(s *storage.CookieStorage) string {
		if err := s.Set("token", "tok-123"); err != nil {
			return err.Error()
		}
		v, _ := s.Get("token")
		return v
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", readBody(t, resp))

	ck := responseCookies(resp)["simkah_token"]
	require.NotNil(t, ck)
	assert.Equal(t, storage.EncodeValue("tok-123"), ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, 3600, ck.MaxAge)
}

func TestCookieStorage_RemoveExpiresCookie(t *testing.T) {
	app := cookieApp(func(s *storage.CookieStorage) string {
		s.Remove("token")
		if _, ok := s.Get("token"); ok {
			return "still there"
		}
		return "gone"
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "simkah_token="+storage.EncodeValue("tok"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "gone", readBody(t, resp))

	ck := responseCookies(resp)["simkah_token"]
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.True(t, ck.Expires.Before(time.Now()))
}

func TestCookieStorage_ValueTooLarge(t *testing.T) {
	app := cookieApp(func(s *storage.CookieStorage) string {
		err := s.Set("registration_draft", strings.Repeat("x", 5000))
		if err == storage.ErrValueTooLarge {
			return "too large"
		}
		return "stored"
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "too large", readBody(t, resp))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var sb strings.Builder
	_, err := io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	return sb.String()
}
