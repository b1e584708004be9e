package entity

// Roles de funcionario.
const (
	RoleAdmin       = "admin"
	RoleRegistrador = "registrador"
	RoleConsulta    = "consulta"
)

// User funcionario del sistema. La entidad se persiste como documento JSON,
// por eso el hash sí se serializa; las respuestas HTTP usan DTOs que lo omiten.
type User struct {
	Base
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	Role         string `json:"role"`
	Oficina      string `json:"oficina,omitempty"` // sede (catálogo OFFICE_SITES)
}
