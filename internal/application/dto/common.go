package dto

import "github.com/drtc-puno/sirret-api/internal/domain"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
	Skip  int `query:"skip" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Skip son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// ListResponse envoltura paginada genérica.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
}

// ErrorResponse cuerpo de error HTTP. Details lleva los hallazgos de
// validación cuando el error proviene de un *domain.ValidationError.
type ErrorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Details []domain.Finding `json:"details,omitempty"`
}

// StateChangeRequest entrada común de los cambios de estado administrativos.
type StateChangeRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// SetStateRequest cambio de estado con el estado destino explícito; lo usan
// rutas, vehículos y conductores.
type SetStateRequest struct {
	State  string `json:"state" validate:"required,max=30"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
