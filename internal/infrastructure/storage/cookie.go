package storage

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
)

// maxCookieValue mantiene cada cookie bajo los 4 KiB que aceptan los navegadores.
const maxCookieValue = 3800

// CookieOptions controla cómo se escriben las claves como cookies.
type CookieOptions struct {
	Prefix string // nombre de la cookie = Prefix + key
	Secure bool
	MaxAge int // segundos; 0 es cookie de sesión
}

// CookieStorage Storage por petición respaldado en las cookies del cliente.
// Los valores van en base64url. Lo escrito se ve en lecturas posteriores de la
// misma petición aunque el cliente solo lo reciba en la siguiente.
type CookieStorage struct {
	c       *fiber.Ctx
	opts    CookieOptions
	pending map[string]*string
}

// NewCookieStorage ata un CookieStorage a la petición actual.
func NewCookieStorage(c *fiber.Ctx, opts CookieOptions) *CookieStorage {
	return &CookieStorage{c: c, opts: opts, pending: make(map[string]*string)}
}

// EncodeValue codificación de cookie para los valores guardados.
func EncodeValue(v string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(v))
}

func (s *CookieStorage) name(key string) string {
	return s.opts.Prefix + key
}

// Get devuelve el valor decodificado. Una cookie presente que no se puede
// decodificar se reporta presente con valor vacío: corrupta, no ausente.
func (s *CookieStorage) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	raw := s.c.Cookies(s.name(key))
	if raw == "" {
		return "", false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", true
	}
	return string(decoded), true
}

func (s *CookieStorage) Set(key, value string) error {
	encoded := EncodeValue(value)
	if len(encoded) > maxCookieValue {
		return ErrValueTooLarge
	}
	cookie := &fiber.Cookie{
		Name:     s.name(key),
		Value:    encoded,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.opts.MaxAge > 0 {
		cookie.MaxAge = s.opts.MaxAge
	} else {
		cookie.SessionOnly = true
	}
	s.c.Cookie(cookie)
	s.pending[key] = &value
	return nil
}

func (s *CookieStorage) Remove(key string) {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.name(key),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.pending[key] = nil
}
