package entity

import "time"

// Base campos comunes a todos los agregados del registro. Se embebe en cada
// entidad y se serializa plano dentro del documento JSON.
//
// La baja lógica (IsActive=false) conserva el registro pero lo excluye de los
// listados por defecto; la eliminación física solo existe en rutas
// administrativas con guardas referenciales.
type Base struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	IsActive  bool       `json:"isActive"`
	// SearchText texto plegado (minúsculas, sin tildes) que mantiene el
	// repositorio para la búsqueda libre; nunca lo escribe el cliente.
	SearchText string `json:"searchText,omitempty"`
}

// Touch marca el registro como actualizado.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = &now
}

// HistoryEntry evento del historial por registro (append-only).
type HistoryEntry struct {
	Timestamp         time.Time `json:"timestamp"`
	UserID            string    `json:"userId"`
	Action            string    `json:"action"`
	Reason            string    `json:"reason,omitempty"`
	SourceDocumentRef string    `json:"sourceDocumentRef,omitempty"`
}
