package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

const proveedorColumns = `id, tipo_documento, numero_documento, nombres, apellidos, telefono, email, direccion,
	razon_social, contacto, estado, created_at, updated_at`

// ProveedorRepo implementación de ProveedorRepository.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

func scanProveedor(row scanner) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := row.Scan(&p.ID, &p.TipoDocumento, &p.NumeroDocumento, &p.Nombres, &p.Apellidos, &p.Telefono,
		&p.Email, &p.Direccion, &p.RazonSocial, &p.Contacto, &p.Estado, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (` + proveedorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TipoDocumento, p.NumeroDocumento, p.Nombres, p.Apellidos, p.Telefono, p.Email, p.Direccion,
		p.RazonSocial, p.Contacto, p.Estado, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

func (r *ProveedorRepo) GetByID(ctx context.Context, id string) (*entity.Proveedor, error) {
	p, err := scanProveedor(r.q.QueryRow(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return p, nil
}

func (r *ProveedorRepo) GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE tipo_documento = $1 AND numero_documento = $2`
	p, err := scanProveedor(r.q.QueryRow(ctx, query, tipo, numero))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor por documento: %w", err)
	}
	return p, nil
}

func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET tipo_documento = $2, numero_documento = $3, nombres = $4, apellidos = $5,
			telefono = $6, email = $7, direccion = $8, razon_social = $9, contacto = $10, estado = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.TipoDocumento, p.NumeroDocumento, p.Nombres, p.Apellidos, p.Telefono, p.Email, p.Direccion,
		p.RazonSocial, p.Contacto, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca también por razón social.
func (r *ProveedorRepo) List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.Proveedor, error) {
	query := `
		SELECT ` + proveedorColumns + ` FROM proveedores
		WHERE ($1 = '' OR razon_social ILIKE $2 OR nombres || ' ' || apellidos ILIKE $2 OR numero_documento ILIKE $2)
		ORDER BY COALESCE(NULLIF(razon_social, ''), nombres) LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, busqueda, likePattern(busqueda), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
