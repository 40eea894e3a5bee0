package repository

import (
	"context"
	"errors"
	"fmt"

	"roa-marketplace-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateCalificacion is returned when the (calificador, calificado,
// orden) unique constraint rejects an insert.
var ErrDuplicateCalificacion = errors.New("calificacion already exists for this orden")

// CalificacionRepository handles database operations for calificaciones
type CalificacionRepository struct {
	db Querier
}

// NewCalificacionRepository creates a new calificacion repository
func NewCalificacionRepository(db Querier) *CalificacionRepository {
	return &CalificacionRepository{db: db}
}

const calificacionColumns = `id, calificador_id, calificado_id, orden_id, producto_id,
		puntuacion, comentario, reportada, created_at, updated_at`

func scanCalificacion(row pgx.Row) (*models.Calificacion, error) {
	var c models.Calificacion
	err := row.Scan(
		&c.ID, &c.CalificadorID, &c.CalificadoID, &c.OrdenID, &c.ProductoID,
		&c.Puntuacion, &c.Comentario, &c.Reportada, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new calificacion
func (r *CalificacionRepository) Create(ctx context.Context, c *models.Calificacion) error {
	query := `
		INSERT INTO calificaciones (id, calificador_id, calificado_id, orden_id, producto_id,
			puntuacion, comentario, reportada, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.CalificadorID, c.CalificadoID, c.OrdenID, c.ProductoID,
		c.Puntuacion, c.Comentario, c.Reportada, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCalificacion
		}
		return fmt.Errorf("failed to create calificacion: %w", err)
	}
	return nil
}

// GetByID retrieves a calificacion by ID
func (r *CalificacionRepository) GetByID(ctx context.Context, id string) (*models.Calificacion, error) {
	query := `SELECT ` + calificacionColumns + ` FROM calificaciones WHERE id = $1`
	c, err := scanCalificacion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("calificacion not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get calificacion: %w", err)
	}
	return c, nil
}

// Exists checks whether this rater already rated this party for this orden
func (r *CalificacionRepository) Exists(ctx context.Context, calificadorID, calificadoID, ordenID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM calificaciones
		WHERE calificador_id = $1 AND calificado_id = $2 AND orden_id = $3)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, calificadorID, calificadoID, ordenID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check calificacion existence: %w", err)
	}
	return exists, nil
}

// ListForUser retrieves the non-reported calificaciones a user has received
func (r *CalificacionRepository) ListForUser(ctx context.Context, calificadoID string) ([]*models.Calificacion, error) {
	query := `SELECT ` + calificacionColumns + ` FROM calificaciones
		WHERE calificado_id = $1 AND reportada = false
		ORDER BY created_at DESC`
	return r.queryCalificaciones(ctx, query, calificadoID)
}

// List retrieves all calificaciones, newest first
func (r *CalificacionRepository) List(ctx context.Context) ([]*models.Calificacion, error) {
	query := `SELECT ` + calificacionColumns + ` FROM calificaciones ORDER BY created_at DESC`
	return r.queryCalificaciones(ctx, query)
}

func (r *CalificacionRepository) queryCalificaciones(ctx context.Context, query string, args ...any) ([]*models.Calificacion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calificaciones: %w", err)
	}
	defer rows.Close()

	var calificaciones []*models.Calificacion
	for rows.Next() {
		c, err := scanCalificacion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calificacion: %w", err)
		}
		calificaciones = append(calificaciones, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calificaciones: %w", err)
	}
	return calificaciones, nil
}

// AverageForUser computes the average score a user has received. Users with
// no ratings average to zero.
func (r *CalificacionRepository) AverageForUser(ctx context.Context, calificadoID string) (float64, error) {
	query := `SELECT COALESCE(AVG(puntuacion), 0) FROM calificaciones
		WHERE calificado_id = $1 AND reportada = false`
	var avg float64
	if err := r.db.QueryRow(ctx, query, calificadoID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}

// CountForUser counts the ratings a user has received
func (r *CalificacionRepository) CountForUser(ctx context.Context, calificadoID string) (int, error) {
	query := `SELECT COUNT(*) FROM calificaciones
		WHERE calificado_id = $1 AND reportada = false`
	var count int
	if err := r.db.QueryRow(ctx, query, calificadoID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}

// SetReportada flags or clears the reported bit on a calificacion
func (r *CalificacionRepository) SetReportada(ctx context.Context, id string, reportada bool) error {
	query := `UPDATE calificaciones SET reportada = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.Exec(ctx, query, reportada, id)
	if err != nil {
		return fmt.Errorf("failed to flag calificacion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("calificacion not found")
	}
	return nil
}

// Delete removes a calificacion, scoped to its author
func (r *CalificacionRepository) Delete(ctx context.Context, id, calificadorID string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM calificaciones WHERE id = $1 AND calificador_id = $2`, id, calificadorID)
	if err != nil {
		return fmt.Errorf("failed to delete calificacion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("calificacion not found")
	}
	return nil
}
