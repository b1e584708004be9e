package entity

import "github.com/shopspring/decimal"

// Estados de una ruta autorizada.
const (
	RouteActive    = "ACTIVE"
	RouteInactive  = "INACTIVE"
	RouteSuspended = "SUSPENDED"
)

// RoutePoint extremo de la ruta: localidad de origen o destino.
type RoutePoint struct {
	LocalityID string `json:"localityId"`
	Name       string `json:"name"`
}

// ItineraryStop escala intermedia del itinerario, ordenada.
type ItineraryStop struct {
	LocalityID string `json:"localityId"`
	Name       string `json:"name"`
	Order      int    `json:"order"`
}

// Frequency frecuencia del servicio (diaria, interdiaria, semanal...).
type Frequency struct {
	Kind        string   `json:"kind,omitempty"`
	Count       int      `json:"count,omitempty"`
	Days        []string `json:"days,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Schedule horario de salida/llegada declarado.
type Schedule struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival,omitempty"`
}

// Route servicio origen→destino autorizado a una empresa bajo una resolución.
// Invariantes:
//   - Code único dentro de su resolución (entre rutas activas).
//   - Origin.LocalityID != Destination.LocalityID.
//   - Los snapshots Company y Resolution se refrescan al escribir y deben
//     coincidir con las entidades referenciadas en ese momento.
//   - El itinerario tiene valores de Order únicos y localidades distintas.
type Route struct {
	Base
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	ResolutionID  string          `json:"resolutionId"`
	Origin        RoutePoint      `json:"origin"`
	Destination   RoutePoint      `json:"destination"`
	Itinerary     []ItineraryStop `json:"itinerary,omitempty"`
	Company       CompanyRef      `json:"company"`
	Resolution    ResolutionRef   `json:"resolution"`
	Frequency     Frequency       `json:"frequency"`
	Schedules     []Schedule      `json:"schedules,omitempty"`
	RouteKind     string          `json:"routeKind,omitempty"`
	ServiceKind   string          `json:"serviceKind,omitempty"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	EstimatedTime string          `json:"estimatedTime,omitempty"` // "HH:MM"
	Fare          decimal.Decimal `json:"fare"`                    // soles
	Capacity      int             `json:"capacity,omitempty"`
	State         string          `json:"state"`
	History       []HistoryEntry  `json:"history,omitempty"`
}
