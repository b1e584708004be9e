package dto

// CreateDriverRequest entrada para habilitar un conductor.
type CreateDriverRequest struct {
	DNI             string `json:"dni" validate:"required,len=8,numeric"`
	GivenNames      string `json:"givenNames" validate:"required,max=120"`
	Surnames        string `json:"surnames" validate:"required,max=120"`
	BirthDate       string `json:"birthDate" validate:"omitempty"`
	LicenseNumber   string `json:"licenseNumber" validate:"omitempty,max=20"`
	LicenseCategory string `json:"licenseCategory" validate:"omitempty,max=10"`
	LicenseExpiry   string `json:"licenseExpiry" validate:"omitempty"`
	CompanyRUC      string `json:"companyRuc" validate:"omitempty,len=11,numeric"`
	Phone           string `json:"phone" validate:"omitempty,max=120"`
	Email           string `json:"email" validate:"omitempty,email"`
}

// UpdateDriverRequest campos editables del conductor.
type UpdateDriverRequest struct {
	GivenNames      *string `json:"givenNames" validate:"omitempty,max=120"`
	Surnames        *string `json:"surnames" validate:"omitempty,max=120"`
	LicenseNumber   *string `json:"licenseNumber" validate:"omitempty,max=20"`
	LicenseCategory *string `json:"licenseCategory" validate:"omitempty,max=10"`
	LicenseExpiry   *string `json:"licenseExpiry" validate:"omitempty"`
	Phone           *string `json:"phone" validate:"omitempty,max=120"`
	Email           *string `json:"email" validate:"omitempty,email"`
}

// ListDriversRequest filtros del listado de conductores.
type ListDriversRequest struct {
	PageRequest
	CompanyID       string `query:"companyId"`
	State           string `query:"state"`
	Text            string `query:"q"`
	IncludeInactive bool   `query:"includeInactive"`
}
