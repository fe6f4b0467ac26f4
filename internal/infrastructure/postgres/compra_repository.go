package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var _ repository.CompraRepository = (*CompraRepo)(nil)

const compraColumns = `id, numero, proveedor_id, empleado_id, fecha, subtotal, impuesto, total, estado,
	observaciones, fecha_recepcion, created_at, updated_at`

// CompraRepo implementación de CompraRepository (usable con pool o tx).
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador.
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

func scanCompra(row scanner) (*entity.Compra, error) {
	var c entity.Compra
	err := row.Scan(&c.ID, &c.Numero, &c.ProveedorID, &c.EmpleadoID, &c.Fecha, &c.Subtotal, &c.Impuesto,
		&c.Total, &c.Estado, &c.Observaciones, &c.FechaRecepcion, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompraRepo) NextNumero(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('compras_numero_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next numero compra: %w", err)
	}
	return n, nil
}

// Create inserta cabecera y detalles; llamar dentro de una transacción.
func (r *CompraRepo) Create(ctx context.Context, c *entity.Compra) error {
	query := `
		INSERT INTO compras (` + compraColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Numero, c.ProveedorID, c.EmpleadoID, c.Fecha, c.Subtotal, c.Impuesto, c.Total, c.Estado,
		c.Observaciones, c.FechaRecepcion, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert compra: %w", err)
	}

	detalleQuery := `
		INSERT INTO detalles_compra (id, compra_id, producto_id, cantidad, costo_unitario, tasa_impuesto,
			subtotal, valor_impuesto, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, d := range c.Detalles {
		_, err := r.q.Exec(ctx, detalleQuery,
			d.ID, c.ID, d.ProductoID, d.Cantidad, d.CostoUnitario, d.TasaImpuesto, d.Subtotal,
			d.ValorImpuesto, d.Total,
		)
		if err != nil {
			return fmt.Errorf("insert detalle compra: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la compra con sus detalles.
func (r *CompraRepo) GetByID(ctx context.Context, id string) (*entity.Compra, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate como GetByID, bloqueando la cabecera (SELECT ... FOR UPDATE). Llamar dentro de una transacción.
func (r *CompraRepo) GetForUpdate(ctx context.Context, id string) (*entity.Compra, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *CompraRepo) get(ctx context.Context, id, lock string) (*entity.Compra, error) {
	c, err := scanCompra(r.q.QueryRow(ctx, `SELECT `+compraColumns+` FROM compras WHERE id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}

	query := `
		SELECT id, compra_id, producto_id, cantidad, costo_unitario, tasa_impuesto, subtotal, valor_impuesto, total
		FROM detalles_compra WHERE compra_id = $1`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get detalles compra: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetalleCompra
		if err := rows.Scan(&d.ID, &d.CompraID, &d.ProductoID, &d.Cantidad, &d.CostoUnitario, &d.TasaImpuesto,
			&d.Subtotal, &d.ValorImpuesto, &d.Total); err != nil {
			return nil, fmt.Errorf("scan detalle compra: %w", err)
		}
		c.Detalles = append(c.Detalles, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CompraRepo) List(ctx context.Context, f repository.CompraFiltro, limit, offset int) ([]*entity.Compra, error) {
	var (
		conds []string
		args  []any
	)
	if f.ProveedorID != "" {
		args = append(args, f.ProveedorID)
		conds = append(conds, fmt.Sprintf("proveedor_id = $%d", len(args)))
	}
	if f.Estado != "" {
		args = append(args, f.Estado)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		conds = append(conds, fmt.Sprintf("fecha >= $%d", len(args)))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		conds = append(conds, fmt.Sprintf("fecha < $%d", len(args)))
	}
	query := `SELECT ` + compraColumns + ` FROM compras`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY fecha DESC, numero DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Compra
	for rows.Next() {
		c, err := scanCompra(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateEstado persiste estado, fecha de recepción y updated_at.
func (r *CompraRepo) UpdateEstado(ctx context.Context, c *entity.Compra) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE compras SET estado = $2, fecha_recepcion = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Estado, c.FechaRecepcion, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update estado compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
