package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, categoria_id, codigo, nombre, descripcion, precio_venta, costo, tasa_impuesto,
	stock, stock_minimo, estado, created_at, updated_at`

// ProductoRepo implementación de ProductoRepository (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

func scanProducto(row scanner) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(&p.ID, &p.CategoriaID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.PrecioVenta, &p.Costo,
		&p.TasaImpuesto, &p.Stock, &p.StockMinimo, &p.Estado, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoriaID, p.Codigo, p.Nombre, p.Descripcion, p.PrecioVenta, p.Costo, p.TasaImpuesto,
		p.Stock, p.StockMinimo, p.Estado, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) getOne(ctx context.Context, query string, arg any) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	return r.getOne(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1`, id)
}

func (r *ProductoRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error) {
	return r.getOne(ctx, `SELECT `+productoColumns+` FROM productos WHERE codigo = $1`, codigo)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	return r.getOne(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza los datos de catálogo; stock y costo quedan intactos.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos SET categoria_id = $2, codigo = $3, nombre = $4, descripcion = $5,
			precio_venta = $6, tasa_impuesto = $7, stock_minimo = $8, estado = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CategoriaID, p.Codigo, p.Nombre, p.Descripcion, p.PrecioVenta, p.TasaImpuesto,
		p.StockMinimo, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List arma el WHERE según los filtros presentes.
func (r *ProductoRepo) List(ctx context.Context, f repository.ProductoFiltro, limit, offset int) ([]*entity.Producto, error) {
	var (
		conds []string
		args  []any
	)
	if f.CategoriaID != "" {
		args = append(args, f.CategoriaID)
		conds = append(conds, fmt.Sprintf("categoria_id = $%d", len(args)))
	}
	if f.Busqueda != "" {
		args = append(args, likePattern(f.Busqueda))
		conds = append(conds, fmt.Sprintf("(codigo ILIKE $%d OR nombre ILIKE $%d)", len(args), len(args)))
	}
	if f.SoloActivos {
		args = append(args, entity.EstadoActivo)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	query := `SELECT ` + productoColumns + ` FROM productos`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY nombre LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.list(ctx, query, args...)
}

func (r *ProductoRepo) ListBajoStock(ctx context.Context, limit int) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + ` FROM productos
		WHERE estado = $1 AND stock <= stock_minimo
		ORDER BY (stock_minimo - stock) DESC, nombre LIMIT $2`
	return r.list(ctx, query, entity.EstadoActivo, limit)
}

func (r *ProductoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Producto, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStockYCosto fija stock y costo promedio tras un movimiento.
func (r *ProductoRepo) UpdateStockYCosto(ctx context.Context, id string, stock, costo decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = $2, costo = $3, updated_at = NOW() WHERE id = $1`, id, stock, costo)
	if err != nil {
		return fmt.Errorf("update stock producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
