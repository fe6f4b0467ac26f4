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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación de CategoriaRepository.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador.
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

func scanCategoria(row scanner) (*entity.Categoria, error) {
	var c entity.Categoria
	if err := row.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Estado, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoriaRepo) Create(ctx context.Context, c *entity.Categoria) error {
	query := `
		INSERT INTO categorias (id, nombre, descripcion, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Nombre, c.Descripcion, c.Estado, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

func (r *CategoriaRepo) GetByID(ctx context.Context, id string) (*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, estado, created_at, updated_at FROM categorias WHERE id = $1`
	c, err := scanCategoria(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return c, nil
}

// GetByNombre compara sin distinguir mayúsculas.
func (r *CategoriaRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, estado, created_at, updated_at FROM categorias WHERE LOWER(nombre) = LOWER($1)`
	c, err := scanCategoria(r.q.QueryRow(ctx, query, nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria por nombre: %w", err)
	}
	return c, nil
}

func (r *CategoriaRepo) Update(ctx context.Context, c *entity.Categoria) error {
	query := `UPDATE categorias SET nombre = $2, descripcion = $3, estado = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Nombre, c.Descripcion, c.Estado, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoriaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Categoria, error) {
	query := `
		SELECT id, nombre, descripcion, estado, created_at, updated_at
		FROM categorias ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		c, err := scanCategoria(rows)
		if err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete borra la categoría. Si aún la referencia algún producto retorna ErrConflict.
func (r *CategoriaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete categoria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoriaRepo) CountProductos(ctx context.Context, id string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos WHERE categoria_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count productos de categoria: %w", err)
	}
	return n, nil
}
