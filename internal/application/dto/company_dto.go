package dto

// CreateCompanyRequest entrada para registrar una empresa.
type CreateCompanyRequest struct {
	RUC                string  `json:"ruc" validate:"required,len=11,numeric"`
	LegalName          string  `json:"legalName" validate:"required,min=3,max=250"`
	OfficialName       string  `json:"officialName" validate:"omitempty,max=250"`
	ShortName          string  `json:"shortName" validate:"omitempty,max=120"`
	FiscalAddress      string  `json:"fiscalAddress" validate:"omitempty,max=300"`
	ServiceKind        string  `json:"serviceKind" validate:"omitempty,max=50"`
	Phone              string  `json:"phone" validate:"omitempty,max=120"`
	Email              string  `json:"email" validate:"omitempty,email"`
	RepresentativeDNI  string  `json:"representativeDni" validate:"omitempty,len=8,numeric"`
	RepresentativeName Persona `json:"representativeName"`
}

// Persona nombres y apellidos de una persona natural.
type Persona struct {
	GivenNames string `json:"givenNames" validate:"omitempty,max=120"`
	Surnames   string `json:"surnames" validate:"omitempty,max=120"`
}

// UpdateCompanyRequest entrada para actualizar una empresa; solo los campos
// presentes se modifican.
type UpdateCompanyRequest struct {
	LegalName     *string `json:"legalName" validate:"omitempty,min=3,max=250"`
	OfficialName  *string `json:"officialName" validate:"omitempty,max=250"`
	ShortName     *string `json:"shortName" validate:"omitempty,max=120"`
	FiscalAddress *string `json:"fiscalAddress" validate:"omitempty,max=300"`
	ServiceKind   *string `json:"serviceKind" validate:"omitempty,max=50"`
	Phone         *string `json:"phone" validate:"omitempty,max=120"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

// ChangeCompanyStateRequest cambio de estado administrativo de la empresa.
type ChangeCompanyStateRequest struct {
	State  string `json:"state" validate:"required,max=30"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ListCompaniesRequest filtros del listado de empresas.
type ListCompaniesRequest struct {
	PageRequest
	State           string `query:"state"`
	ServiceKind     string `query:"serviceKind"`
	RUCPrefix       string `query:"ruc"`
	Text            string `query:"q"`
	CreatedFrom     string `query:"createdFrom"` // dd/mm/yyyy o YYYY-MM-DD
	CreatedTo       string `query:"createdTo"`
	IncludeInactive bool   `query:"includeInactive"`
}
