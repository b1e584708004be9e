package entity

import (
	"regexp"
	"time"
)

// Estados del expediente en mesa de partes. ARCHIVED es terminal.
const (
	ExpedienteRegistered = "REGISTERED"
	ExpedienteInProcess  = "IN_PROCESS"
	ExpedienteApproved   = "APPROVED"
	ExpedienteRejected   = "REJECTED"
	ExpedienteArchived   = "ARCHIVED"
)

// ExpedienteNumberRx forma canónica E-NNNN-YYYY.
var ExpedienteNumberRx = regexp.MustCompile(`^E-\d{4}-\d{4}$`)

// Derivation movimiento del expediente entre oficinas (historial append-only).
type Derivation struct {
	Timestamp  time.Time `json:"timestamp"`
	FromOffice string    `json:"fromOffice,omitempty"`
	ToOffice   string    `json:"toOffice"`
	UserID     string    `json:"userId"`
	Note       string    `json:"note,omitempty"`
}

// Expediente carpeta de trámite con número de seguimiento. El número impreso
// en el cargo (y su QR) permite la consulta pública de estado.
type Expediente struct {
	Base
	Number        string         `json:"number"`
	Subject       string         `json:"subject"`
	ApplicantRUC  string         `json:"applicantRuc,omitempty"`
	ApplicantName string         `json:"applicantName,omitempty"`
	CompanyID     string         `json:"companyId,omitempty"`
	CurrentOffice string         `json:"currentOffice,omitempty"`
	State         string         `json:"state"`
	Derivations   []Derivation   `json:"derivations,omitempty"`
	History       []HistoryEntry `json:"history,omitempty"`
}

// Terminal informa si el expediente ya no admite transiciones.
func (e *Expediente) Terminal() bool {
	return e.State == ExpedienteArchived
}
