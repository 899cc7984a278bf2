package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ErrorResponse cuerpo de error HTTP, compartido con la API upstream.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// FieldErrors aplana un error de validación en campo -> mensaje para las plantillas.
// Los errores sin campo van bajo "form".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := map[string]string{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			if nested, ok := ferr.(validation.Errors); ok {
				for sub, serr := range nested {
					out[field+"."+sub] = serr.Error()
				}
				continue
			}
			out[field] = ferr.Error()
		}
		return out
	}
	out["form"] = err.Error()
	return out
}
