package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del portal (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
	Routes  RoutesConfig
	DevAPI  DevAPIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP del portal.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig API REST upstream dueña de registros, usuarios y agendas.
type APIConfig struct {
	BaseURL        string // e.g. http://localhost:8081/api
	TimeoutSeconds int
}

// Timeout devuelve el timeout por llamada a la API upstream.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig cookies que hacen de almacenamiento local del navegador.
type SessionConfig struct {
	CookiePrefix      string
	CookieSecure      bool
	CookieMaxAgeHours int
}

// MaxAge devuelve la vida de la cookie en segundos.
func (c SessionConfig) MaxAge() int {
	return c.CookieMaxAgeHours * 60 * 60
}

// RoutesConfig destinos de redirección del guard de rutas y tras login/logout.
type RoutesConfig struct {
	Login        string
	AdminHome    string
	StaffHome    string
	PenghuluHome string
}

// DevAPIConfig configuración de la API upstream en memoria para desarrollo.
type DevAPIConfig struct {
	Host       string
	Port       int
	JWTSecret  string
	Expiration int // minutos
	Issuer     string
}

// Addr devuelve la dirección de escucha de la API de desarrollo (host:port).
func (c DevAPIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, API_BASE_URL, ROUTE_LOGIN, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "simkah-portal"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8081/api"), "/"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 10),
		},
		Session: SessionConfig{
			CookiePrefix:      getString(v, "SESSION_COOKIE_PREFIX", "simkah_"),
			CookieSecure:      getBool(v, "SESSION_COOKIE_SECURE", false),
			CookieMaxAgeHours: getInt(v, "SESSION_COOKIE_MAX_AGE_HOURS", 24),
		},
		Routes: RoutesConfig{
			Login:        getString(v, "ROUTE_LOGIN", "/login"),
			AdminHome:    getString(v, "ROUTE_ADMIN_HOME", "/admin"),
			StaffHome:    getString(v, "ROUTE_STAFF_HOME", "/admin/staff"),
			PenghuluHome: getString(v, "ROUTE_PENGHULU_HOME", "/penghulu"),
		},
		DevAPI: DevAPIConfig{
			Host:       getString(v, "DEVAPI_HOST", "0.0.0.0"),
			Port:       getInt(v, "DEVAPI_PORT", 8081),
			JWTSecret:  getString(v, "DEVAPI_JWT_SECRET", "simkah-dev-secret"),
			Expiration: getInt(v, "DEVAPI_JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "DEVAPI_JWT_ISSUER", "simkah-devapi"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL is empty")
	}
	if err := cfg.Routes.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate exige que cada ruta sea absoluta y distinta de "/".
func (r RoutesConfig) validate() error {
	for _, route := range []struct{ key, value string }{
		{"ROUTE_LOGIN", r.Login},
		{"ROUTE_ADMIN_HOME", r.AdminHome},
		{"ROUTE_STAFF_HOME", r.StaffHome},
		{"ROUTE_PENGHULU_HOME", r.PenghuluHome},
	} {
		trimmed := strings.TrimRight(route.value, "/")
		if !strings.HasPrefix(route.value, "/") || trimmed == "" {
			return fmt.Errorf("config: %s must be an absolute path below /, got %q", route.key, route.value)
		}
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
