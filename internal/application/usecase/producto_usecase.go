package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para productos. Costo y Stock se manejan vía movimientos.
type ProductoUseCase struct {
	repo       repository.ProductoRepository
	categorias repository.CategoriaRepository
}

// NewProductoUseCase construye el caso de uso. repo puede venir decorado con caché.
func NewProductoUseCase(repo repository.ProductoRepository, categorias repository.CategoriaRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, categorias: categorias}
}

// Create crea un producto. Costo y stock inician en 0.
func (uc *ProductoUseCase) Create(ctx context.Context, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	codigo := strings.ToUpper(strings.TrimSpace(in.Codigo))
	if codigo == "" || strings.TrimSpace(in.Nombre) == "" {
		return nil, fmt.Errorf("%w: código y nombre requeridos", domain.ErrInvalidInput)
	}
	if !entity.TasaImpuestoValida(in.TasaImpuesto) {
		return nil, fmt.Errorf("%w: tasa_impuesto %s (0, 5 o 19)", domain.ErrInvalidInput, in.TasaImpuesto)
	}
	if in.PrecioVenta.IsNegative() || in.StockMinimo.IsNegative() {
		return nil, fmt.Errorf("%w: precio y stock mínimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	if err := validarEscala(in.PrecioVenta, in.StockMinimo); err != nil {
		return nil, err
	}
	if err := uc.checkCategoria(ctx, in.CategoriaID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: producto con código %s", domain.ErrDuplicate, codigo)
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:           uuid.New().String(),
		CategoriaID:  in.CategoriaID,
		Codigo:       codigo,
		Nombre:       strings.TrimSpace(in.Nombre),
		Descripcion:  strings.TrimSpace(in.Descripcion),
		PrecioVenta:  in.PrecioVenta,
		Costo:        decimal.Zero,
		TasaImpuesto: in.TasaImpuesto,
		Stock:        decimal.Zero,
		StockMinimo:  in.StockMinimo,
		Estado:       entity.EstadoActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

func validarEscala(precio, stockMinimo decimal.Decimal) error {
	if !entity.CabeEnDecimales(precio, entity.DecimalesPrecio) {
		return fmt.Errorf("%w: precio_venta admite %d decimales", domain.ErrInvalidInput, entity.DecimalesPrecio)
	}
	if !entity.CabeEnDecimales(stockMinimo, entity.DecimalesCantidad) {
		return fmt.Errorf("%w: stock_minimo admite %d decimales", domain.ErrInvalidInput, entity.DecimalesCantidad)
	}
	return nil
}

func (uc *ProductoUseCase) checkCategoria(ctx context.Context, id string) error {
	categoria, err := uc.categorias.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if categoria == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *ProductoUseCase) get(ctx context.Context, id string) (*entity.Producto, error) {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return producto, nil
}

func (uc *ProductoUseCase) GetByID(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	producto, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Update actualiza un producto. No permite modificar Costo ni Stock.
func (uc *ProductoUseCase) Update(ctx context.Context, id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoriaID != nil && *in.CategoriaID != producto.CategoriaID {
		if err := uc.checkCategoria(ctx, *in.CategoriaID); err != nil {
			return nil, err
		}
		producto.CategoriaID = *in.CategoriaID
	}
	if in.Codigo != nil {
		codigo := strings.ToUpper(strings.TrimSpace(*in.Codigo))
		otro, err := uc.repo.GetByCodigo(ctx, codigo)
		if err != nil {
			return nil, err
		}
		if otro != nil && otro.ID != producto.ID {
			return nil, fmt.Errorf("%w: producto con código %s", domain.ErrDuplicate, codigo)
		}
		producto.Codigo = codigo
	}
	if in.Nombre != nil {
		producto.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		producto.Descripcion = strings.TrimSpace(*in.Descripcion)
	}
	if in.PrecioVenta != nil {
		if in.PrecioVenta.IsNegative() {
			return nil, fmt.Errorf("%w: precio_venta negativo", domain.ErrInvalidInput)
		}
		if err := validarEscala(*in.PrecioVenta, decimal.Zero); err != nil {
			return nil, err
		}
		producto.PrecioVenta = *in.PrecioVenta
	}
	if in.TasaImpuesto != nil {
		if !entity.TasaImpuestoValida(*in.TasaImpuesto) {
			return nil, fmt.Errorf("%w: tasa_impuesto %s (0, 5 o 19)", domain.ErrInvalidInput, *in.TasaImpuesto)
		}
		producto.TasaImpuesto = *in.TasaImpuesto
	}
	if in.StockMinimo != nil {
		if in.StockMinimo.IsNegative() {
			return nil, fmt.Errorf("%w: stock_minimo negativo", domain.ErrInvalidInput)
		}
		if err := validarEscala(decimal.Zero, *in.StockMinimo); err != nil {
			return nil, err
		}
		producto.StockMinimo = *in.StockMinimo
	}
	if in.Estado != nil {
		producto.Estado = *in.Estado
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List lista productos con filtros opcionales.
func (uc *ProductoUseCase) List(ctx context.Context, in dto.ProductoFiltroRequest) (*dto.ProductoListResponse, error) {
	in.DefaultPage()
	filtro := repository.ProductoFiltro{
		CategoriaID: in.CategoriaID,
		Busqueda:    strings.TrimSpace(in.Busqueda),
		SoloActivos: in.SoloActivos,
	}
	list, err := uc.repo.List(ctx, filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return toProductoList(list, in.PageRequest), nil
}

// ListBajoStock productos activos con stock en o por debajo del mínimo.
func (uc *ProductoUseCase) ListBajoStock(ctx context.Context, page dto.PageRequest) (*dto.ProductoListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListBajoStock(ctx, page.Limit)
	if err != nil {
		return nil, err
	}
	return toProductoList(list, dto.PageRequest{Limit: page.Limit}), nil
}

// Delete inactiva el producto; el histórico de ventas y compras lo sigue referenciando.
func (uc *ProductoUseCase) Delete(ctx context.Context, id string) error {
	producto, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	producto.Estado = entity.EstadoInactivo
	producto.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, producto)
}

func toProductoList(list []*entity.Producto, page dto.PageRequest) *dto.ProductoListResponse {
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
