package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access denied")
	ErrConflict     = errors.New("conflict with current state")
	ErrUpstream     = errors.New("upstream api error")
	// ErrNoProvider guard o handler montado sin el proveedor de sesión.
	ErrNoProvider = errors.New("session provider not mounted")
)
