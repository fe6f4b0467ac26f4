package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

func (uc *ProveedorUseCase) Create(ctx context.Context, in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	persona := in.ToEntity()
	if err := persona.Validar(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDocumento(ctx, persona.TipoDocumento, persona.NumeroDocumento)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: proveedor con documento %s %s", domain.ErrDuplicate, persona.TipoDocumento, persona.NumeroDocumento)
	}
	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:          uuid.New().String(),
		Persona:     persona,
		RazonSocial: strings.TrimSpace(in.RazonSocial),
		Contacto:    strings.TrimSpace(in.Contacto),
		Estado:      entity.EstadoActivo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

func (uc *ProveedorUseCase) get(ctx context.Context, id string) (*entity.Proveedor, error) {
	proveedor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	return proveedor, nil
}

func (uc *ProveedorUseCase) GetByID(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

func (uc *ProveedorUseCase) Update(ctx context.Context, id string, in dto.UpdateProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.PersonaUpdate.Aplicar(&proveedor.Persona)
	if err := proveedor.Persona.Validar(); err != nil {
		return nil, err
	}
	if in.RazonSocial != nil {
		proveedor.RazonSocial = strings.TrimSpace(*in.RazonSocial)
	}
	if in.Contacto != nil {
		proveedor.Contacto = strings.TrimSpace(*in.Contacto)
	}
	if in.Estado != nil {
		proveedor.Estado = *in.Estado
	}
	proveedor.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

func (uc *ProveedorUseCase) List(ctx context.Context, busqueda string, page dto.PageRequest) (*dto.ProveedorListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, busqueda, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProveedorResponse(p))
	}
	return &dto.ProveedorListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete inactiva el proveedor.
func (uc *ProveedorUseCase) Delete(ctx context.Context, id string) error {
	proveedor, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	proveedor.Estado = entity.EstadoInactivo
	proveedor.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, proveedor)
}
