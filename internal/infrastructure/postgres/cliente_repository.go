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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteColumns = `id, tipo_documento, numero_documento, nombres, apellidos, telefono, email, direccion,
	estado, created_at, updated_at`

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

func scanCliente(row scanner) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(&c.ID, &c.TipoDocumento, &c.NumeroDocumento, &c.Nombres, &c.Apellidos, &c.Telefono,
		&c.Email, &c.Direccion, &c.Estado, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TipoDocumento, c.NumeroDocumento, c.Nombres, c.Apellidos, c.Telefono, c.Email, c.Direccion,
		c.Estado, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByDocumento obtiene un cliente por tipo y número de documento.
func (r *ClienteRepo) GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE tipo_documento = $1 AND numero_documento = $2`
	c, err := scanCliente(r.q.QueryRow(ctx, query, tipo, numero))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente por documento: %w", err)
	}
	return c, nil
}

// Update actualiza los datos del cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET tipo_documento = $2, numero_documento = $3, nombres = $4, apellidos = $5,
			telefono = $6, email = $7, direccion = $8, estado = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TipoDocumento, c.NumeroDocumento, c.Nombres, c.Apellidos, c.Telefono, c.Email, c.Direccion,
		c.Estado, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes ordenados por nombre; busqueda filtra por nombre o documento.
func (r *ClienteRepo) List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.Cliente, error) {
	query := `
		SELECT ` + clienteColumns + ` FROM clientes
		WHERE ($1 = '' OR nombres || ' ' || apellidos ILIKE $2 OR numero_documento ILIKE $2)
		ORDER BY nombres, apellidos LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, busqueda, likePattern(busqueda), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
