package dto

// CreateResolutionRequest entrada para registrar una resolución. La empresa
// se identifica por RUC; para una hija, ParentNumber referencia a la padre.
//
// Las fechas aceptan dd/mm/yyyy y YYYY-MM-DD. En una padre, ValidityEnd es
// opcional: si falta se deriva de ValidityStart y ValidityYears; si está y
// discrepa dentro de la tolerancia gana la calculada con advertencia.
type CreateResolutionRequest struct {
	Number        string `json:"number" validate:"required,max=20"`
	CompanyRUC    string `json:"companyRuc" validate:"required,len=11,numeric"`
	ExpedienteID  string `json:"expedienteId" validate:"omitempty,uuid4"`
	IssueDate     string `json:"issueDate" validate:"required"`
	Kind          string `json:"kind" validate:"required,oneof=PARENT CHILD"`
	ProcedureKind string `json:"procedureKind" validate:"required,max=30"`
	ValidityStart string `json:"validityStart" validate:"omitempty"`
	ValidityYears int    `json:"validityYears" validate:"omitempty,oneof=4 10"`
	ValidityEnd   string `json:"validityEnd" validate:"omitempty"`
	ParentNumber  string `json:"parentNumber" validate:"omitempty,max=20"`
	Description   string `json:"description" validate:"omitempty,max=1000"`
	Observations  string `json:"observations" validate:"omitempty,max=1000"`
}

// UpdateResolutionRequest campos editables sin transición de estado.
type UpdateResolutionRequest struct {
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	Observations *string `json:"observations" validate:"omitempty,max=1000"`
	ExpedienteID *string `json:"expedienteId" validate:"omitempty,uuid4"`
}

// ListResolutionsRequest filtros del listado de resoluciones.
type ListResolutionsRequest struct {
	PageRequest
	CompanyID       string `query:"companyId"`
	Kind            string `query:"kind"`
	State           string `query:"state"`
	ProcedureKind   string `query:"procedureKind"`
	NumberPrefix    string `query:"number"`
	IssuedFrom      string `query:"issuedFrom"`
	IssuedTo        string `query:"issuedTo"`
	IncludeInactive bool   `query:"includeInactive"`
}
