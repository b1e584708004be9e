package dto

// TechnicalDataInput ficha técnica declarada del vehículo.
type TechnicalDataInput struct {
	Engine       string  `json:"engine" validate:"omitempty,max=50"`
	Chassis      string  `json:"chassis" validate:"omitempty,max=50"`
	VIN          string  `json:"vin" validate:"omitempty,max=30"`
	Axles        int     `json:"axles" validate:"omitempty,min=1,max=10"`
	Cylinders    int     `json:"cylinders" validate:"omitempty,min=1"`
	Wheels       int     `json:"wheels" validate:"omitempty,min=2"`
	Seats        int     `json:"seats" validate:"omitempty,min=1"`
	NetWeight    float64 `json:"netWeight" validate:"omitempty,gt=0"`
	GrossWeight  float64 `json:"grossWeight" validate:"omitempty,gt=0"`
	Length       float64 `json:"length" validate:"omitempty,gt=0"`
	Width        float64 `json:"width" validate:"omitempty,gt=0"`
	Height       float64 `json:"height" validate:"omitempty,gt=0"`
	Fuel         string  `json:"fuel" validate:"omitempty,max=20"`
	Displacement float64 `json:"displacement" validate:"omitempty,gt=0"`
	Power        float64 `json:"power" validate:"omitempty,gt=0"`
}

// CreateVehicleRequest entrada para habilitar un vehículo. La placa se
// normaliza (mayúsculas, sin espacios) antes de validar unicidad.
type CreateVehicleRequest struct {
	Plate           string             `json:"plate" validate:"required,max=10"`
	CompanyRUC      string             `json:"companyRuc" validate:"required,len=11,numeric"`
	Category        string             `json:"category" validate:"omitempty,max=5"`
	Brand           string             `json:"brand" validate:"omitempty,max=50"`
	Model           string             `json:"model" validate:"omitempty,max=50"`
	ManufactureYear int                `json:"manufactureYear" validate:"omitempty,min=1950"`
	TechnicalData   TechnicalDataInput `json:"technicalData"`
}

// UpdateVehicleRequest campos editables del vehículo.
type UpdateVehicleRequest struct {
	Category        *string             `json:"category" validate:"omitempty,max=5"`
	Brand           *string             `json:"brand" validate:"omitempty,max=50"`
	Model           *string             `json:"model" validate:"omitempty,max=50"`
	ManufactureYear *int                `json:"manufactureYear" validate:"omitempty,min=1950"`
	TechnicalData   *TechnicalDataInput `json:"technicalData"`
}

// TransferVehicleRequest traslada el vehículo a otra empresa conservando la
// trazabilidad en el historial.
type TransferVehicleRequest struct {
	ToCompanyRUC string `json:"toCompanyRuc" validate:"required,len=11,numeric"`
	Reason       string `json:"reason" validate:"omitempty,max=500"`
}

// AssignRoutesRequest asigna rutas de la misma empresa al vehículo.
type AssignRoutesRequest struct {
	RouteIDs []string `json:"routeIds" validate:"required,min=1,dive,required"`
}

// ListVehiclesRequest filtros del listado de vehículos.
type ListVehiclesRequest struct {
	PageRequest
	CompanyID       string `query:"companyId"`
	State           string `query:"state"`
	Category        string `query:"category"`
	PlatePrefix     string `query:"plate"`
	IncludeInactive bool   `query:"includeInactive"`
}
