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

var _ repository.VentaRepository = (*VentaRepo)(nil)

const ventaColumns = `id, numero, cliente_id, empleado_id, fecha, subtotal, impuesto, total, estado,
	observaciones, created_at, updated_at`

// VentaRepo implementación de VentaRepository (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador.
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

func scanVenta(row scanner) (*entity.Venta, error) {
	var v entity.Venta
	err := row.Scan(&v.ID, &v.Numero, &v.ClienteID, &v.EmpleadoID, &v.Fecha, &v.Subtotal, &v.Impuesto,
		&v.Total, &v.Estado, &v.Observaciones, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VentaRepo) NextNumero(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('ventas_numero_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next numero venta: %w", err)
	}
	return n, nil
}

// Create inserta cabecera y detalles; llamar dentro de una transacción.
func (r *VentaRepo) Create(ctx context.Context, v *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Numero, v.ClienteID, v.EmpleadoID, v.Fecha, v.Subtotal, v.Impuesto, v.Total, v.Estado,
		v.Observaciones, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}

	detalleQuery := `
		INSERT INTO detalles_venta (id, venta_id, producto_id, cantidad, precio_unitario, tasa_impuesto,
			subtotal, valor_impuesto, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, d := range v.Detalles {
		_, err := r.q.Exec(ctx, detalleQuery,
			d.ID, v.ID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.TasaImpuesto, d.Subtotal,
			d.ValorImpuesto, d.Total,
		)
		if err != nil {
			return fmt.Errorf("insert detalle venta: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus detalles.
func (r *VentaRepo) GetByID(ctx context.Context, id string) (*entity.Venta, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate como GetByID, bloqueando la cabecera (SELECT ... FOR UPDATE). Llamar dentro de una transacción.
func (r *VentaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Venta, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *VentaRepo) get(ctx context.Context, id, lock string) (*entity.Venta, error) {
	v, err := scanVenta(r.q.QueryRow(ctx, `SELECT `+ventaColumns+` FROM ventas WHERE id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}

	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, tasa_impuesto, subtotal, valor_impuesto, total
		FROM detalles_venta WHERE venta_id = $1`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get detalles venta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.TasaImpuesto,
			&d.Subtotal, &d.ValorImpuesto, &d.Total); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		v.Detalles = append(v.Detalles, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// List devuelve cabeceras, más recientes primero.
func (r *VentaRepo) List(ctx context.Context, f repository.VentaFiltro, limit, offset int) ([]*entity.Venta, error) {
	var (
		conds []string
		args  []any
	)
	if f.ClienteID != "" {
		args = append(args, f.ClienteID)
		conds = append(conds, fmt.Sprintf("cliente_id = $%d", len(args)))
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
	query := `SELECT ` + ventaColumns + ` FROM ventas`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY fecha DESC, numero DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VentaRepo) UpdateEstado(ctx context.Context, v *entity.Venta) error {
	tag, err := r.q.Exec(ctx, `UPDATE ventas SET estado = $2, updated_at = $3 WHERE id = $1`,
		v.ID, v.Estado, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
