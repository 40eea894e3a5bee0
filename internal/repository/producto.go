package repository

import (
	"context"
	"fmt"

	"roa-marketplace-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// ProductoRepository handles database operations for productos
type ProductoRepository struct {
	db Querier
}

// NewProductoRepository creates a new producto repository
func NewProductoRepository(db Querier) *ProductoRepository {
	return &ProductoRepository{db: db}
}

const productoColumns = `id, user_id, nombre, descripcion, disponible, origen_roa, imagenes,
		status, created_at, updated_at`

func scanProducto(row pgx.Row) (*models.Producto, error) {
	var p models.Producto
	err := row.Scan(
		&p.ID, &p.UserID, &p.Nombre, &p.Descripcion, &p.Disponible, &p.OrigenROA, &p.Imagenes,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new producto
func (r *ProductoRepository) Create(ctx context.Context, p *models.Producto) error {
	query := `
		INSERT INTO productos (id, user_id, nombre, descripcion, disponible, origen_roa, imagenes,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Nombre, p.Descripcion, p.Disponible, p.OrigenROA, p.Imagenes,
		p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create producto: %w", err)
	}
	return nil
}

// GetByID retrieves a producto by ID
func (r *ProductoRepository) GetByID(ctx context.Context, id string) (*models.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	p, err := scanProducto(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("producto not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get producto: %w", err)
	}
	return p, nil
}

// ListByUser retrieves a user's productos, newest first
func (r *ProductoRepository) ListByUser(ctx context.Context, userID string) ([]*models.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryProductos(ctx, query, userID)
}

// ListAvailable retrieves productos marked disponible and not rejected
// by moderation
func (r *ProductoRepository) ListAvailable(ctx context.Context) ([]*models.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos
		WHERE disponible = true AND status <> $1 ORDER BY created_at DESC`
	return r.queryProductos(ctx, query, models.ModerationRechazado)
}

// List retrieves all productos, newest first
func (r *ProductoRepository) List(ctx context.Context) ([]*models.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos ORDER BY created_at DESC`
	return r.queryProductos(ctx, query)
}

func (r *ProductoRepository) queryProductos(ctx context.Context, query string, args ...any) ([]*models.Producto, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list productos: %w", err)
	}
	defer rows.Close()

	var productos []*models.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan producto: %w", err)
		}
		productos = append(productos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating productos: %w", err)
	}
	return productos, nil
}

// Update updates the editable fields of a producto
func (r *ProductoRepository) Update(ctx context.Context, p *models.Producto) error {
	query := `
		UPDATE productos
		SET nombre = $1, descripcion = $2, disponible = $3, origen_roa = $4, imagenes = $5,
			updated_at = now()
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query,
		p.Nombre, p.Descripcion, p.Disponible, p.OrigenROA, p.Imagenes, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update producto: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("producto not found")
	}
	return nil
}

// Delete removes a producto
func (r *ProductoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete producto: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("producto not found")
	}
	return nil
}
