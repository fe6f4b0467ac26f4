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

var _ repository.EmpleadoRepository = (*EmpleadoRepo)(nil)

const empleadoColumns = `id, tipo_documento, numero_documento, nombres, apellidos, telefono, email, direccion,
	cargo, rol, password_hash, estado, created_at, updated_at`

// EmpleadoRepo implementación de EmpleadoRepository.
type EmpleadoRepo struct {
	q Querier
}

// NewEmpleadoRepository construye el adaptador.
func NewEmpleadoRepository(q Querier) *EmpleadoRepo {
	return &EmpleadoRepo{q: q}
}

func scanEmpleado(row scanner) (*entity.Empleado, error) {
	var e entity.Empleado
	err := row.Scan(&e.ID, &e.TipoDocumento, &e.NumeroDocumento, &e.Nombres, &e.Apellidos, &e.Telefono,
		&e.Email, &e.Direccion, &e.Cargo, &e.Rol, &e.PasswordHash, &e.Estado, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmpleadoRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Empleado, error) {
	e, err := scanEmpleado(r.q.QueryRow(ctx, `SELECT `+empleadoColumns+` FROM empleados WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empleado: %w", err)
	}
	return e, nil
}

func (r *EmpleadoRepo) Create(ctx context.Context, e *entity.Empleado) error {
	query := `
		INSERT INTO empleados (` + empleadoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.TipoDocumento, e.NumeroDocumento, e.Nombres, e.Apellidos, e.Telefono, e.Email, e.Direccion,
		e.Cargo, e.Rol, e.PasswordHash, e.Estado, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empleado: %w", err)
	}
	return nil
}

func (r *EmpleadoRepo) GetByID(ctx context.Context, id string) (*entity.Empleado, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail compara en minúsculas; el email se guarda normalizado.
func (r *EmpleadoRepo) GetByEmail(ctx context.Context, email string) (*entity.Empleado, error) {
	return r.getOne(ctx, "email = LOWER($1)", email)
}

func (r *EmpleadoRepo) GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Empleado, error) {
	return r.getOne(ctx, "tipo_documento = $1 AND numero_documento = $2", tipo, numero)
}

// Update actualiza datos, rol, estado y hash de contraseña.
func (r *EmpleadoRepo) Update(ctx context.Context, e *entity.Empleado) error {
	query := `
		UPDATE empleados SET tipo_documento = $2, numero_documento = $3, nombres = $4, apellidos = $5,
			telefono = $6, email = $7, direccion = $8, cargo = $9, rol = $10, password_hash = $11,
			estado = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.TipoDocumento, e.NumeroDocumento, e.Nombres, e.Apellidos, e.Telefono, e.Email, e.Direccion,
		e.Cargo, e.Rol, e.PasswordHash, e.Estado, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update empleado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EmpleadoRepo) List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.Empleado, error) {
	query := `
		SELECT ` + empleadoColumns + ` FROM empleados
		WHERE ($1 = '' OR nombres || ' ' || apellidos ILIKE $2 OR numero_documento ILIKE $2 OR email ILIKE $2)
		ORDER BY nombres, apellidos LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, busqueda, likePattern(busqueda), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empleados: %w", err)
	}
	defer rows.Close()
	var list []*entity.Empleado
	for rows.Next() {
		e, err := scanEmpleado(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empleado: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
