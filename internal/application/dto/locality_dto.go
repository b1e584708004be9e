package dto

// CreateLocalityRequest entrada para registrar una localidad del ubigeo.
type CreateLocalityRequest struct {
	Ubigeo         string `json:"ubigeo" validate:"required,len=6,numeric"`
	Name           string `json:"name" validate:"required,max=120"`
	Level          string `json:"level" validate:"required,oneof=DEPARTMENT PROVINCE DISTRICT POPULATED_CENTER"`
	DepartmentName string `json:"departmentName" validate:"omitempty,max=120"`
	ProvinceName   string `json:"provinceName" validate:"omitempty,max=120"`
	DistrictName   string `json:"districtName" validate:"omitempty,max=120"`
}

// UpdateLocalityRequest campos editables de la localidad.
type UpdateLocalityRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=120"`
	DepartmentName *string `json:"departmentName" validate:"omitempty,max=120"`
	ProvinceName   *string `json:"provinceName" validate:"omitempty,max=120"`
	DistrictName   *string `json:"districtName" validate:"omitempty,max=120"`
}

// ListLocalitiesRequest filtros del listado de localidades.
type ListLocalitiesRequest struct {
	PageRequest
	Level           string `query:"level"`
	UbigeoPrefix    string `query:"ubigeo"`
	Text            string `query:"q"`
	IncludeInactive bool   `query:"includeInactive"`
}
