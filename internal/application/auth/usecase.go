package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/usecase"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
	"github.com/jhoicas/gestion-ventas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación de empleados.
type AuthUseCase struct {
	empleados repository.EmpleadoRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(empleados repository.EmpleadoRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{empleados: empleados, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + empleado.
// Email desconocido y password incorrecto dan el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	empleado, err := uc.empleados.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if empleado == nil || empleado.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(empleado.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !empleado.Activo() {
		return nil, domain.ErrForbidden
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, empleado.ID, empleado.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Empleado:  *usecase.ToEmpleadoResponse(empleado),
	}, nil
}
