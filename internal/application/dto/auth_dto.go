package dto

// LoginRequest credenciales de ingreso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse token emitido y datos del funcionario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterUserRequest alta de un funcionario (solo rol admin).
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,max=150"`
	Role     string `json:"role" validate:"required,oneof=admin registrador consulta"`
	Oficina  string `json:"oficina" validate:"omitempty,max=80"`
}

// UserResponse vista del funcionario sin el hash de contraseña.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Oficina  string `json:"oficina,omitempty"`
}
