package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación de MovimientoRepository (kardex).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador.
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

func (r *MovimientoRepo) Create(ctx context.Context, m *entity.MovimientoInventario) error {
	query := `
		INSERT INTO movimientos_inventario (id, producto_id, tipo, cantidad, costo_unitario, costo_total,
			stock_final, referencia, motivo, empleado_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductoID, m.Tipo, m.Cantidad, m.CostoUnitario, m.CostoTotal, m.StockFinal,
		m.Referencia, m.Motivo, nullableString(m.EmpleadoID), m.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByProducto devuelve el kardex en orden cronológico.
func (r *MovimientoRepo) ListByProducto(ctx context.Context, productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `
		SELECT id, producto_id, tipo, cantidad, costo_unitario, costo_total, stock_final, referencia, motivo,
			COALESCE(empleado_id::text, ''), fecha
		FROM movimientos_inventario
		WHERE producto_id = $1
			AND ($2::timestamptz IS NULL OR fecha >= $2)
			AND ($3::timestamptz IS NULL OR fecha < $3)
		ORDER BY fecha, id LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, productoID, desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.CostoUnitario, &m.CostoTotal,
			&m.StockFinal, &m.Referencia, &m.Motivo, &m.EmpleadoID, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// nullableString convierte "" en NULL para columnas opcionales.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
