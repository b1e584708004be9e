package dto

import "github.com/shopspring/decimal"

// StopInput escala del itinerario identificada por ubigeo o id de localidad.
type StopInput struct {
	LocalityID string `json:"localityId" validate:"required"`
	Order      int    `json:"order" validate:"min=0"`
}

// FrequencyInput frecuencia declarada del servicio.
type FrequencyInput struct {
	Kind        string   `json:"kind" validate:"omitempty,max=30"`
	Count       int      `json:"count" validate:"omitempty,min=1"`
	Days        []string `json:"days" validate:"omitempty,dive,max=15"`
	Description string   `json:"description" validate:"omitempty,max=200"`
}

// ScheduleInput horario de salida/llegada "HH:MM".
type ScheduleInput struct {
	Departure string `json:"departure" validate:"required,len=5"`
	Arrival   string `json:"arrival" validate:"omitempty,len=5"`
}

// CreateRouteRequest entrada para autorizar una ruta bajo una resolución.
type CreateRouteRequest struct {
	Code                string          `json:"code" validate:"required,max=20"`
	Name                string          `json:"name" validate:"omitempty,max=200"`
	ResolutionNumber    string          `json:"resolutionNumber" validate:"required,max=20"`
	OriginLocalityID    string          `json:"originLocalityId" validate:"required"`
	DestinationLocality string          `json:"destinationLocalityId" validate:"required"`
	Itinerary           []StopInput     `json:"itinerary" validate:"omitempty,dive"`
	Frequency           FrequencyInput  `json:"frequency"`
	Schedules           []ScheduleInput `json:"schedules" validate:"omitempty,dive"`
	RouteKind           string          `json:"routeKind" validate:"omitempty,max=30"`
	ServiceKind         string          `json:"serviceKind" validate:"omitempty,max=50"`
	DistanceKm          decimal.Decimal `json:"distanceKm"`
	EstimatedTime       string          `json:"estimatedTime" validate:"omitempty,len=5"`
	Fare                decimal.Decimal `json:"fare"`
	Capacity            int             `json:"capacity" validate:"omitempty,min=1"`
}

// UpdateRouteRequest campos editables de la ruta.
type UpdateRouteRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=200"`
	Frequency     *FrequencyInput  `json:"frequency"`
	Schedules     []ScheduleInput  `json:"schedules" validate:"omitempty,dive"`
	DistanceKm    *decimal.Decimal `json:"distanceKm"`
	EstimatedTime *string          `json:"estimatedTime" validate:"omitempty,len=5"`
	Fare          *decimal.Decimal `json:"fare"`
	Capacity      *int             `json:"capacity" validate:"omitempty,min=1"`
}

// ListRoutesRequest filtros del listado de rutas.
type ListRoutesRequest struct {
	PageRequest
	CompanyID       string `query:"companyId"`
	ResolutionID    string `query:"resolutionId"`
	State           string `query:"state"`
	ServiceKind     string `query:"serviceKind"`
	Text            string `query:"q"`
	IncludeInactive bool   `query:"includeInactive"`
}
