package entity

// Estados administrativos de un vehículo habilitado.
const (
	VehicleActive       = "ACTIVE"
	VehicleInactive     = "INACTIVE"
	VehicleSuspended    = "SUSPENDED"
	VehicleDeregistered = "DEREGISTERED"
)

// VehicleCategories categorías del Reglamento Nacional de Vehículos; el
// catálogo VEHICLE_CATEGORIES puede redefinir la lista.
var VehicleCategories = []string{"M1", "M2", "M3", "N1", "N2", "N3", "O1", "O2", "O3", "O4"}

// FuelKinds combustibles por defecto; el catálogo FUEL_KINDS puede
// redefinir la lista.
var FuelKinds = []string{"GASOLINA", "DIESEL", "GLP", "GNV", "ELECTRICO", "HIBRIDO", "DUAL"}

// Dimensions dimensiones exteriores en metros.
type Dimensions struct {
	Length float64 `json:"length,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// TechnicalData ficha técnica del vehículo (datos de SUNARP/CITV).
type TechnicalData struct {
	Engine       string     `json:"engine,omitempty"`
	Chassis      string     `json:"chassis,omitempty"`
	VIN          string     `json:"vin,omitempty"`
	Axles        int        `json:"axles,omitempty"`
	Cylinders    int        `json:"cylinders,omitempty"`
	Wheels       int        `json:"wheels,omitempty"`
	Seats        int        `json:"seats,omitempty"`
	NetWeight    float64    `json:"netWeight,omitempty"`   // toneladas
	GrossWeight  float64    `json:"grossWeight,omitempty"` // toneladas
	Dimensions   Dimensions `json:"dimensions,omitempty"`
	Fuel         string     `json:"fuel,omitempty"`
	Displacement float64    `json:"displacement,omitempty"` // cm3
	Power        float64    `json:"power,omitempty"`        // HP
}

// Vehicle registro administrativo de un vehículo habilitado para una empresa.
// Invariantes: placa normalizada única entre vehículos activos,
// GrossWeight >= NetWeight, las rutas asignadas pertenecen a la misma empresa.
type Vehicle struct {
	Base
	Plate            string         `json:"plate"`
	CurrentCompanyID string         `json:"currentCompanyId"`
	Category         string         `json:"category,omitempty"`
	Brand            string         `json:"brand,omitempty"`
	Model            string         `json:"model,omitempty"`
	ManufactureYear  int            `json:"manufactureYear,omitempty"`
	TechnicalData    TechnicalData  `json:"technicalData"`
	State            string         `json:"state"`
	AssignedRouteIDs []string       `json:"assignedRouteIds,omitempty"`
	// VehicleDataID apunta a la ficha técnica compartida (gemelo técnico);
	// vacío si la ficha vive solo embebida en TechnicalData.
	VehicleDataID string         `json:"vehicleDataId,omitempty"`
	History       []HistoryEntry `json:"history,omitempty"`
}

// VehicleData gemelo técnico: describe una sola vez el vehículo físico
// (placa/VIN) para que varios registros administrativos lo referencien a lo
// largo del tiempo. Es la verdad para los atributos estáticos.
type VehicleData struct {
	Base
	Plate           string        `json:"plate"`
	VIN             string        `json:"vin,omitempty"`
	Brand           string        `json:"brand,omitempty"`
	Model           string        `json:"model,omitempty"`
	ManufactureYear int           `json:"manufactureYear,omitempty"`
	TechnicalData   TechnicalData `json:"technicalData"`
}
