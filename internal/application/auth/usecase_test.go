package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-ventas/internal/application/auth"
	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/memoria"
	"github.com/jhoicas/gestion-ventas/pkg/jwt"
)

const secret = "secreto-de-prueba"

func nuevoAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := memoria.NewEmpleadoRepository(memoria.NewStore())
	require.NoError(t, repo.Create(context.Background(), &entity.Empleado{
		ID: "e1", Persona: entity.Persona{TipoDocumento: "CC", NumeroDocumento: "1", Nombres: "Vera", Email: "vera@tienda.co"},
		Rol: entity.RolVendedor, PasswordHash: string(hash), Estado: entity.EstadoActivo,
	}))
	require.NoError(t, repo.Create(context.Background(), &entity.Empleado{
		ID: "e2", Persona: entity.Persona{TipoDocumento: "CC", NumeroDocumento: "2", Nombres: "Ido", Email: "ido@tienda.co"},
		Rol: entity.RolAdmin, PasswordHash: string(hash), Estado: entity.EstadoInactivo,
	}))
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "test"})
}

func TestLogin_OK(t *testing.T) {
	uc := nuevoAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Vera@Tienda.co ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "e1", out.Empleado.ID)
	assert.False(t, out.ExpiresAt.IsZero())

	empleadoID, rol, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "e1", empleadoID)
	assert.Equal(t, entity.RolVendedor, rol)
}

func TestLogin_Errores(t *testing.T) {
	uc := nuevoAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "vera@tienda.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ido@tienda.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
