package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/auth"
	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/docstore"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/registry"
	"github.com/drtc-puno/sirret-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newUseCase(t *testing.T) *auth.UseCase {
	t.Helper()
	users := registry.NewUserRepo(docstore.NewMemory())
	return auth.NewUseCase(users, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "sirret-test",
	})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	u, err := uc.Register(ctx, dto.RegisterUserRequest{
		Email:    "registrador@drtc.gob.pe",
		Password: "clave-segura",
		FullName: "Rosa Ccallo",
		Role:     entity.RoleRegistrador,
		Oficina:  "DIRECCION_DE_TRANSPORTES",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	out, err := uc.Login(ctx, dto.LoginRequest{
		Email:    "registrador@drtc.gob.pe",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleRegistrador, claims.Role)
	assert.Equal(t, "DIRECCION_DE_TRANSPORTES", claims.Oficina)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterUserRequest{
		Email:    "registrador@drtc.gob.pe",
		Password: "clave-segura",
		FullName: "Rosa Ccallo",
		Role:     entity.RoleRegistrador,
	})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{
		Email: "registrador@drtc.gob.pe", Password: "otra-clave",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// un email desconocido responde igual que una clave mala
	_, err = uc.Login(ctx, dto.LoginRequest{
		Email: "nadie@drtc.gob.pe", Password: "clave-segura",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_EmailDuplicadoConflicto(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterUserRequest{
		Email: "registrador@drtc.gob.pe", Password: "clave", FullName: "Rosa",
		Role: entity.RoleRegistrador,
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterUserRequest{
		Email: "registrador@drtc.gob.pe", Password: "clave", FullName: "Otra",
		Role: entity.RoleConsulta,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestEnsureAdmin_EsIdempotente(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin@drtc.gob.pe", "clave-inicial"))
	// una segunda pasada no crea otro ni pisa la contraseña
	require.NoError(t, uc.EnsureAdmin(ctx, "admin@drtc.gob.pe", "otra-clave"))

	out, err := uc.Login(ctx, dto.LoginRequest{
		Email: "admin@drtc.gob.pe", Password: "clave-inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	// sin credenciales configuradas no hace nada
	require.NoError(t, uc.EnsureAdmin(ctx, "", ""))
}
