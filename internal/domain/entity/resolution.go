package entity

import (
	"regexp"
	"time"
)

// Tipos de resolución: la PADRE otorga la autorización primaria con vigencia
// explícita; la HIJA modifica/renueva/suspende a una padre y hereda su
// ventana de vigencia.
const (
	ResolutionParent = "PARENT"
	ResolutionChild  = "CHILD"
)

// Estados de una resolución. EXPIRED y ANNULLED son terminales.
const (
	ResolutionInForce   = "IN_FORCE"
	ResolutionExpired   = "EXPIRED"
	ResolutionSuspended = "SUSPENDED"
	ResolutionAnnulled  = "ANNULLED"
)

// Tipos de trámite que origina una resolución.
const (
	ProcedureNewAuthorization = "NEW_AUTHORIZATION"
	ProcedureRenewal          = "RENEWAL"
	ProcedureAmendment        = "AMENDMENT"
	ProcedureSuspension       = "SUSPENSION"
	ProcedureRevocation       = "REVOCATION"
	ProcedureFleetIncrease    = "FLEET_INCREASE"
	ProcedureFleetDecrease    = "FLEET_DECREASE"
)

// ProcedureKinds tipos de trámite admitidos.
var ProcedureKinds = []string{
	ProcedureNewAuthorization, ProcedureRenewal, ProcedureAmendment,
	ProcedureSuspension, ProcedureRevocation,
	ProcedureFleetIncrease, ProcedureFleetDecrease,
}

// ResolutionNumberRx forma canónica R-NNNN-YYYY.
var ResolutionNumberRx = regexp.MustCompile(`^R-\d{4}-\d{4}$`)

// Resolution acto administrativo que autoriza o modifica la operación de una
// empresa. Invariantes:
//   - Number único entre resoluciones activas, forma R-NNNN-YYYY.
//   - PARENT: ValidityYears ∈ {4,10} y ValidityEnd = ValidityStart + años − 1 día.
//   - CHILD: ParentID obligatorio, vigencia heredada de la padre,
//     misma empresa que la padre.
//   - ChildIDs refleja el conjunto de hijas activas (índice desnormalizado).
type Resolution struct {
	Base
	Number        string         `json:"number"`
	CompanyID     string         `json:"companyId"`
	ExpedienteID  string         `json:"expedienteId,omitempty"`
	IssueDate     time.Time      `json:"issueDate"`
	ValidityStart time.Time      `json:"validityStart"`
	ValidityYears int            `json:"validityYears,omitempty"` // solo PARENT
	ValidityEnd   time.Time      `json:"validityEnd"`             // derivado, no verdad independiente
	Kind          string         `json:"kind"`
	ProcedureKind string         `json:"procedureKind"`
	State         string         `json:"state"`
	ParentID      string         `json:"parentId,omitempty"`
	ChildIDs      []string       `json:"childIds,omitempty"`
	Description   string         `json:"description,omitempty"`
	IssuingUser   string         `json:"issuingUser,omitempty"`
	Observations  string         `json:"observations,omitempty"`
	History       []HistoryEntry `json:"history,omitempty"`
}

// ResolutionRef snapshot de resolución embebido en rutas.
type ResolutionRef struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Kind   string `json:"kind"`
	State  string `json:"state"`
}

// Ref devuelve el snapshot de la resolución.
func (r *Resolution) Ref() ResolutionRef {
	return ResolutionRef{ID: r.ID, Number: r.Number, Kind: r.Kind, State: r.State}
}

// Terminal informa si el estado no admite más transiciones.
func (r *Resolution) Terminal() bool {
	return r.State == ResolutionExpired || r.State == ResolutionAnnulled
}
