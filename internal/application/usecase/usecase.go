// Package usecase implementa los casos de uso del registro. Cada caso de uso
// recibe puertos de repositorio, valida con internal/domain/validate y deja
// constancia de cada mutación en el historial del agregado.
package usecase

import (
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

// Acciones registradas en el historial por agregado.
const (
	ActionCreated      = "CREATED"
	ActionUpdated      = "UPDATED"
	ActionStateChanged = "STATE_CHANGED"
	ActionDeactivated  = "DEACTIVATED"
	ActionReactivated  = "REACTIVATED"
	ActionTransferred  = "TRANSFERRED"
	ActionDerived      = "DERIVED"
	ActionBulkUpsert   = "BULK_UPSERT"
)

// historyEntry arma el evento de historial con la marca de tiempo dada.
func historyEntry(now time.Time, userID, action, reason, sourceRef string) entity.HistoryEntry {
	return entity.HistoryEntry{
		Timestamp:         now,
		UserID:            userID,
		Action:            action,
		Reason:            reason,
		SourceDocumentRef: sourceRef,
	}
}

// parseOptionalFecha convierte una fecha opcional de entrada; vacío es nil.
func parseOptionalFecha(field, s string) (*time.Time, []domain.Finding) {
	if s == "" {
		return nil, nil
	}
	t, err := peru.ParseFecha(s)
	if err != nil {
		return nil, []domain.Finding{domain.Error(field, "FORMAT", err.Error())}
	}
	return &t, nil
}

// parseRequiredFecha convierte una fecha obligatoria de entrada.
func parseRequiredFecha(field, s string) (time.Time, []domain.Finding) {
	if s == "" {
		return time.Time{}, []domain.Finding{domain.Error(field, "REQUIRED", "la fecha es obligatoria")}
	}
	t, err := peru.ParseFecha(s)
	if err != nil {
		return time.Time{}, []domain.Finding{domain.Error(field, "FORMAT", err.Error())}
	}
	return t, nil
}

// appendUnique agrega el id si no está presente.
func appendUnique(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

// removeID quita el id de la lista si está presente.
func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
