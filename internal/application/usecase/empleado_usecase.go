package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

// EmpleadoUseCase casos de uso CRUD para empleados. El password se guarda como hash bcrypt.
type EmpleadoUseCase struct {
	repo repository.EmpleadoRepository
}

// NewEmpleadoUseCase construye el caso de uso.
func NewEmpleadoUseCase(repo repository.EmpleadoRepository) *EmpleadoUseCase {
	return &EmpleadoUseCase{repo: repo}
}

// Create registra un empleado. Documento y email deben ser únicos.
func (uc *EmpleadoUseCase) Create(ctx context.Context, in dto.CreateEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	persona := in.ToEntity()
	if err := persona.Validar(); err != nil {
		return nil, err
	}
	if persona.Email == "" {
		return nil, fmt.Errorf("%w: email requerido para empleados", domain.ErrInvalidInput)
	}
	if !entity.RolValido(in.Rol) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Rol)
	}
	if err := uc.checkUnico(ctx, "", persona); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	empleado := &entity.Empleado{
		ID:           uuid.New().String(),
		Persona:      persona,
		Cargo:        strings.TrimSpace(in.Cargo),
		Rol:          in.Rol,
		PasswordHash: string(hash),
		Estado:       entity.EstadoActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, empleado); err != nil {
		return nil, err
	}
	return ToEmpleadoResponse(empleado), nil
}

// checkUnico verifica documento y email contra otros empleados distintos de id.
func (uc *EmpleadoUseCase) checkUnico(ctx context.Context, id string, p entity.Persona) error {
	porDoc, err := uc.repo.GetByDocumento(ctx, p.TipoDocumento, p.NumeroDocumento)
	if err != nil {
		return err
	}
	if porDoc != nil && porDoc.ID != id {
		return fmt.Errorf("%w: empleado con documento %s %s", domain.ErrDuplicate, p.TipoDocumento, p.NumeroDocumento)
	}
	porEmail, err := uc.repo.GetByEmail(ctx, p.Email)
	if err != nil {
		return err
	}
	if porEmail != nil && porEmail.ID != id {
		return fmt.Errorf("%w: email %s", domain.ErrDuplicate, p.Email)
	}
	return nil
}

func (uc *EmpleadoUseCase) get(ctx context.Context, id string) (*entity.Empleado, error) {
	empleado, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empleado == nil {
		return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, id)
	}
	return empleado, nil
}

func (uc *EmpleadoUseCase) GetByID(ctx context.Context, id string) (*dto.EmpleadoResponse, error) {
	empleado, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEmpleadoResponse(empleado), nil
}

// Update aplica los campos presentes; si viene password se vuelve a hashear.
func (uc *EmpleadoUseCase) Update(ctx context.Context, id string, in dto.UpdateEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	empleado, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.PersonaUpdate.Aplicar(&empleado.Persona)
	if err := empleado.Persona.Validar(); err != nil {
		return nil, err
	}
	if empleado.Email == "" {
		return nil, fmt.Errorf("%w: email requerido para empleados", domain.ErrInvalidInput)
	}
	if in.TipoDocumento != nil || in.NumeroDocumento != nil || in.Email != nil {
		if err := uc.checkUnico(ctx, empleado.ID, empleado.Persona); err != nil {
			return nil, err
		}
	}
	if in.Cargo != nil {
		empleado.Cargo = strings.TrimSpace(*in.Cargo)
	}
	if in.Rol != nil {
		if !entity.RolValido(*in.Rol) {
			return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, *in.Rol)
		}
		empleado.Rol = *in.Rol
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		empleado.PasswordHash = string(hash)
	}
	if in.Estado != nil {
		empleado.Estado = *in.Estado
	}
	empleado.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, empleado); err != nil {
		return nil, err
	}
	return ToEmpleadoResponse(empleado), nil
}

func (uc *EmpleadoUseCase) List(ctx context.Context, busqueda string, page dto.PageRequest) (*dto.EmpleadoListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, busqueda, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmpleadoResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *ToEmpleadoResponse(e))
	}
	return &dto.EmpleadoListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete inactiva el empleado; deja de poder iniciar sesión.
func (uc *EmpleadoUseCase) Delete(ctx context.Context, id string) error {
	empleado, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	empleado.Estado = entity.EstadoInactivo
	empleado.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, empleado)
}
