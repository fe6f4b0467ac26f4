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

// CategoriaUseCase casos de uso CRUD para categorías.
type CategoriaUseCase struct {
	repo repository.CategoriaRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(repo repository.CategoriaRepository) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo}
}

// Create crea una categoría; el nombre es único sin distinguir mayúsculas.
func (uc *CategoriaUseCase) Create(ctx context.Context, in dto.CreateCategoriaRequest) (*dto.CategoriaResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, nombre)
	}
	now := time.Now()
	categoria := &entity.Categoria{
		ID:          uuid.New().String(),
		Nombre:      nombre,
		Descripcion: strings.TrimSpace(in.Descripcion),
		Estado:      entity.EstadoActivo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

func (uc *CategoriaUseCase) get(ctx context.Context, id string) (*entity.Categoria, error) {
	categoria, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return categoria, nil
}

func (uc *CategoriaUseCase) GetByID(ctx context.Context, id string) (*dto.CategoriaResponse, error) {
	categoria, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

func (uc *CategoriaUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		nombre := strings.TrimSpace(*in.Nombre)
		if nombre == "" {
			return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
		}
		otra, err := uc.repo.GetByNombre(ctx, nombre)
		if err != nil {
			return nil, err
		}
		if otra != nil && otra.ID != categoria.ID {
			return nil, fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, nombre)
		}
		categoria.Nombre = nombre
	}
	if in.Descripcion != nil {
		categoria.Descripcion = strings.TrimSpace(*in.Descripcion)
	}
	if in.Estado != nil {
		categoria.Estado = *in.Estado
	}
	categoria.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

func (uc *CategoriaUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CategoriaListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoriaResponse(c))
	}
	return &dto.CategoriaListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete borra la categoría solo si no tiene productos; si los tiene retorna ErrConflict.
func (uc *CategoriaUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountProductos(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la categoría tiene %d productos", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}
