package dto

// CreateExpedienteRequest entrada para abrir una carpeta de trámite.
type CreateExpedienteRequest struct {
	Number        string `json:"number" validate:"required,max=20"`
	Subject       string `json:"subject" validate:"required,max=300"`
	ApplicantRUC  string `json:"applicantRuc" validate:"omitempty,len=11,numeric"`
	ApplicantName string `json:"applicantName" validate:"omitempty,max=250"`
	Office        string `json:"office" validate:"omitempty,max=80"`
}

// DeriveExpedienteRequest deriva el expediente a otra oficina.
type DeriveExpedienteRequest struct {
	ToOffice string `json:"toOffice" validate:"required,max=80"`
	Note     string `json:"note" validate:"omitempty,max=500"`
}

// ChangeExpedienteStateRequest transición de estado del expediente.
type ChangeExpedienteStateRequest struct {
	State  string `json:"state" validate:"required,oneof=REGISTERED IN_PROCESS APPROVED REJECTED ARCHIVED"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ListExpedientesRequest filtros del listado de expedientes.
type ListExpedientesRequest struct {
	PageRequest
	State           string `query:"state"`
	Office          string `query:"office"`
	ApplicantRUC    string `query:"applicantRuc"`
	Text            string `query:"q"`
	CreatedFrom     string `query:"createdFrom"`
	CreatedTo       string `query:"createdTo"`
	IncludeInactive bool   `query:"includeInactive"`
}

// TrackingResponse vista pública del estado de un expediente; no expone
// datos internos ni el historial de derivaciones completo.
type TrackingResponse struct {
	Number        string `json:"number"`
	Subject       string `json:"subject"`
	State         string `json:"state"`
	CurrentOffice string `json:"currentOffice,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"` // dd/mm/yyyy
}
