package repository

import (
	"context"
	"fmt"

	"roa-marketplace-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// OrdenRepository handles database operations for ordenes
type OrdenRepository struct {
	db Querier
}

// NewOrdenRepository creates a new orden repository
func NewOrdenRepository(db Querier) *OrdenRepository {
	return &OrdenRepository{db: db}
}

const ordenColumns = `id, solicitante_id, proveedor_id, tipo_item, item_id, cantidad_solicitada,
		fecha_propuesta_retiro, mensaje_solicitud, mensaje_respuesta, estado, created_at, updated_at`

func scanOrden(row pgx.Row) (*models.Orden, error) {
	var o models.Orden
	err := row.Scan(
		&o.ID, &o.SolicitanteID, &o.ProveedorID, &o.TipoItem, &o.ItemID, &o.CantidadSolicitada,
		&o.FechaPropuestaRetiro, &o.MensajeSolicitud, &o.MensajeRespuesta, &o.Estado,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create creates a new orden
func (r *OrdenRepository) Create(ctx context.Context, o *models.Orden) error {
	query := `
		INSERT INTO ordenes (id, solicitante_id, proveedor_id, tipo_item, item_id, cantidad_solicitada,
			fecha_propuesta_retiro, mensaje_solicitud, mensaje_respuesta, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.SolicitanteID, o.ProveedorID, o.TipoItem, o.ItemID, o.CantidadSolicitada,
		o.FechaPropuestaRetiro, o.MensajeSolicitud, o.MensajeRespuesta, o.Estado,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create orden: %w", err)
	}
	return nil
}

// GetByID retrieves an orden by ID
func (r *OrdenRepository) GetByID(ctx context.Context, id string) (*models.Orden, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes WHERE id = $1`
	o, err := scanOrden(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("orden not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get orden: %w", err)
	}
	return o, nil
}

// ListByParticipant retrieves ordenes where the user is requester or provider
func (r *OrdenRepository) ListByParticipant(ctx context.Context, userID string) ([]*models.Orden, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes
		WHERE solicitante_id = $1 OR proveedor_id = $1
		ORDER BY created_at DESC`
	return r.queryOrdenes(ctx, query, userID)
}

// List retrieves all ordenes, newest first
func (r *OrdenRepository) List(ctx context.Context) ([]*models.Orden, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes ORDER BY created_at DESC`
	return r.queryOrdenes(ctx, query)
}

func (r *OrdenRepository) queryOrdenes(ctx context.Context, query string, args ...any) ([]*models.Orden, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ordenes: %w", err)
	}
	defer rows.Close()

	var ordenes []*models.Orden
	for rows.Next() {
		o, err := scanOrden(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan orden: %w", err)
		}
		ordenes = append(ordenes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ordenes: %w", err)
	}
	return ordenes, nil
}

// UpdateEstado sets the lifecycle state and optional response message of an
// orden. Transition legality is the service's responsibility.
func (r *OrdenRepository) UpdateEstado(ctx context.Context, id string, estado models.OrderStatus, mensajeRespuesta *string) error {
	query := `
		UPDATE ordenes
		SET estado = $1, mensaje_respuesta = COALESCE($2, mensaje_respuesta), updated_at = now()
		WHERE id = $3
	`
	result, err := r.db.Exec(ctx, query, estado, mensajeRespuesta, id)
	if err != nil {
		return fmt.Errorf("failed to update orden estado: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("orden not found")
	}
	return nil
}

// UpdateEstadoWithLote sets the orden state and the linked lote state in a
// single transaction, so an accept or complete never lands half-applied.
func (r *OrdenRepository) UpdateEstadoWithLote(ctx context.Context, id string, estado models.OrderStatus, mensajeRespuesta *string, loteID string, loteEstado models.BatchStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin orden tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE ordenes
		SET estado = $1, mensaje_respuesta = COALESCE($2, mensaje_respuesta), updated_at = now()
		WHERE id = $3
	`, estado, mensajeRespuesta, id)
	if err != nil {
		return fmt.Errorf("failed to update orden estado: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("orden not found")
	}

	result, err = tx.Exec(ctx,
		`UPDATE lotes SET estado = $1, updated_at = now() WHERE id = $2`,
		loteEstado, loteID)
	if err != nil {
		return fmt.Errorf("failed to update lote estado: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lote not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit orden tx: %w", err)
	}
	return nil
}
