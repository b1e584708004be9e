// Package auth implementa el registro y login de funcionarios. La contraseña
// se almacena como hash bcrypt; el token JWT lleva rol y oficina para que el
// middleware autorice sin consultar el almacén.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/pkg/jwt"
)

// JWTConfig configuración para la emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	now    func() time.Time
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea un funcionario con la contraseña hasheada.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	u := &entity.User{
		Base:         entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		Oficina:      in.Oficina,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Login verifica las credenciales y emite el token.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, u.Oficina, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(u)}, nil
}

// Me devuelve la vista del funcionario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// EnsureAdmin crea el administrador inicial si no existe ningún funcionario
// con ese email. Se invoca al arrancar con las credenciales de configuración.
func (uc *UseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := uc.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	_, err = uc.Register(ctx, dto.RegisterUserRequest{
		Email:    email,
		Password: password,
		FullName: "Administrador",
		Role:     entity.RoleAdmin,
	})
	return err
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Oficina:  u.Oficina,
	}
}
