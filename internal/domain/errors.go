package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Los servicios los envuelven
// con contexto; la capa HTTP los traduce a códigos de estado en un solo lugar.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrReferenceInUse     = errors.New("el recurso está referenciado por otros registros")
	ErrStore              = errors.New("fallo del almacén de documentos")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// Severity de un hallazgo de validación.
type Severity string

const (
	SeverityError   Severity = "ERROR"   // bloquea la escritura
	SeverityWarning Severity = "WARNING" // se reporta, no bloquea
)

// Finding es un hallazgo de validación sobre un campo.
type Finding struct {
	Field    string   `json:"field"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Error construye un hallazgo bloqueante.
func Error(field, code, message string) Finding {
	return Finding{Field: field, Code: code, Message: message, Severity: SeverityError}
}

// Warning construye un hallazgo informativo.
func Warning(field, code, message string) Finding {
	return Finding{Field: field, Code: code, Message: message, Severity: SeverityWarning}
}

// HasErrors informa si la lista contiene al menos un hallazgo bloqueante.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings filtra los hallazgos no bloqueantes.
func Warnings(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// ValidationError agrupa hallazgos bloqueantes. Los validadores acumulan y
// devuelven la lista completa; nunca cortan en el primer error.
type ValidationError struct {
	Findings []Finding
}

// NewValidationError arma el error con los hallazgos ERROR de la lista.
// Devuelve nil si no hay ninguno bloqueante.
func NewValidationError(findings []Finding) error {
	var errs []Finding
	for _, f := range findings {
		if f.Severity == SeverityError {
			errs = append(errs, f)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Findings: errs}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Findings))
	for _, f := range e.Findings {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validación: " + strings.Join(parts, "; ")
}

// AsValidationError extrae un *ValidationError de la cadena de errores.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
