package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

// ClienteUseCase casos de uso CRUD para clientes. Delete es lógico (estado inactivo).
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create registra un cliente; el documento no puede repetirse.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	persona := in.ToEntity()
	if err := persona.Validar(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDocumento(ctx, persona.TipoDocumento, persona.NumeroDocumento)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: cliente con documento %s %s", domain.ErrDuplicate, persona.TipoDocumento, persona.NumeroDocumento)
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		Persona:   persona,
		Estado:    entity.EstadoActivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

func (uc *ClienteUseCase) get(ctx context.Context, id string) (*entity.Cliente, error) {
	cliente, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return cliente, nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// Update aplica los campos presentes.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.PersonaUpdate.Aplicar(&cliente.Persona)
	if err := cliente.Persona.Validar(); err != nil {
		return nil, err
	}
	if in.Estado != nil {
		cliente.Estado = *in.Estado
	}
	cliente.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// List lista clientes con búsqueda opcional por nombre o documento.
func (uc *ClienteUseCase) List(ctx context.Context, busqueda string, page dto.PageRequest) (*dto.ClienteListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, busqueda, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClienteResponse(c))
	}
	return &dto.ClienteListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete inactiva el cliente; sus ventas históricas se conservan.
func (uc *ClienteUseCase) Delete(ctx context.Context, id string) error {
	cliente, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	cliente.Estado = entity.EstadoInactivo
	cliente.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, cliente)
}
