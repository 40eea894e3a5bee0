package repository

import (
	"context"
	"fmt"

	"roa-marketplace-backend/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// LoteRepository handles database operations for lotes
type LoteRepository struct {
	db Querier
}

// NewLoteRepository creates a new lote repository
func NewLoteRepository(db Querier) *LoteRepository {
	return &LoteRepository{db: db}
}

const loteColumns = `id, user_id, tipo_residuo, peso_estimado, ubicacion_lat, ubicacion_lng,
		direccion, fecha_disponible, descripcion, estado, status, created_at, updated_at`

func scanLote(row pgx.Row) (*models.Lote, error) {
	var l models.Lote
	err := row.Scan(
		&l.ID, &l.UserID, &l.TipoResiduo, &l.PesoEstimado, &l.UbicacionLat, &l.UbicacionLng,
		&l.Direccion, &l.FechaDisponible, &l.Descripcion, &l.Estado, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create creates a new lote
func (r *LoteRepository) Create(ctx context.Context, l *models.Lote) error {
	query := `
		INSERT INTO lotes (id, user_id, tipo_residuo, peso_estimado, ubicacion_lat, ubicacion_lng,
			direccion, fecha_disponible, descripcion, estado, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.UserID, l.TipoResiduo, l.PesoEstimado, l.UbicacionLat, l.UbicacionLng,
		l.Direccion, l.FechaDisponible, l.Descripcion, l.Estado, l.Status,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lote: %w", err)
	}
	return nil
}

// GetByID retrieves a lote by ID
func (r *LoteRepository) GetByID(ctx context.Context, id string) (*models.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1`
	l, err := scanLote(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("lote not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get lote: %w", err)
	}
	return l, nil
}

// ListByUser retrieves a user's lotes, newest first
func (r *LoteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryLotes(ctx, query, userID)
}

// List retrieves all lotes, newest first
func (r *LoteRepository) List(ctx context.Context) ([]*models.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes ORDER BY created_at DESC`
	return r.queryLotes(ctx, query)
}

// ListAvailable retrieves the search candidate set: disponible lotes not
// rejected by moderation, optionally narrowed to one waste type. Lotes
// still pendiente are listed; only rechazado content is quarantined.
func (r *LoteRepository) ListAvailable(ctx context.Context, tipo *models.ROAType) ([]*models.Lote, error) {
	builder := sq.Select(loteColumns).
		From("lotes").
		Where(sq.Eq{"estado": models.BatchDisponible}).
		Where(sq.NotEq{"status": models.ModerationRechazado}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)
	if tipo != nil {
		builder = builder.Where(sq.Eq{"tipo_residuo": *tipo})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lote query: %w", err)
	}
	return r.queryLotes(ctx, query, args...)
}

func (r *LoteRepository) queryLotes(ctx context.Context, query string, args ...any) ([]*models.Lote, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotes: %w", err)
	}
	defer rows.Close()

	var lotes []*models.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lote: %w", err)
		}
		lotes = append(lotes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lotes: %w", err)
	}
	return lotes, nil
}

// Update updates the editable fields of a lote
func (r *LoteRepository) Update(ctx context.Context, l *models.Lote) error {
	query := `
		UPDATE lotes
		SET tipo_residuo = $1, peso_estimado = $2, ubicacion_lat = $3, ubicacion_lng = $4,
			direccion = $5, fecha_disponible = $6, descripcion = $7, updated_at = now()
		WHERE id = $8
	`
	result, err := r.db.Exec(ctx, query,
		l.TipoResiduo, l.PesoEstimado, l.UbicacionLat, l.UbicacionLng,
		l.Direccion, l.FechaDisponible, l.Descripcion, l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lote not found")
	}
	return nil
}

// UpdateEstado sets the lifecycle state of a lote. Transition legality is
// the service's responsibility.
func (r *LoteRepository) UpdateEstado(ctx context.Context, id string, estado models.BatchStatus) error {
	query := `UPDATE lotes SET estado = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.Exec(ctx, query, estado, id)
	if err != nil {
		return fmt.Errorf("failed to update lote estado: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lote not found")
	}
	return nil
}

// Delete removes a lote
func (r *LoteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM lotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lote not found")
	}
	return nil
}
