package repository

import (
	"context"
	"fmt"

	"roa-marketplace-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// NotificacionRepository handles database operations for notificaciones
type NotificacionRepository struct {
	db Querier
}

// NewNotificacionRepository creates a new notificacion repository
func NewNotificacionRepository(db Querier) *NotificacionRepository {
	return &NotificacionRepository{db: db}
}

const notificacionColumns = `id, user_id, orden_id, titulo, mensaje, tipo, leida, created_at`

func scanNotificacion(row pgx.Row) (*models.Notificacion, error) {
	var n models.Notificacion
	err := row.Scan(
		&n.ID, &n.UserID, &n.OrdenID, &n.Titulo, &n.Mensaje, &n.Tipo, &n.Leida, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create creates a new notificacion
func (r *NotificacionRepository) Create(ctx context.Context, n *models.Notificacion) error {
	query := `
		INSERT INTO notificaciones (id, user_id, orden_id, titulo, mensaje, tipo, leida, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.UserID, n.OrdenID, n.Titulo, n.Mensaje, n.Tipo, n.Leida, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notificacion: %w", err)
	}
	return nil
}

// ListByUser retrieves a recipient's notificaciones, newest first
func (r *NotificacionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notificacion, error) {
	query := `SELECT ` + notificacionColumns + ` FROM notificaciones
		WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notificaciones: %w", err)
	}
	defer rows.Close()

	var notificaciones []*models.Notificacion
	for rows.Next() {
		n, err := scanNotificacion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notificacion: %w", err)
		}
		notificaciones = append(notificaciones, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notificaciones: %w", err)
	}
	return notificaciones, nil
}

// UnreadCount counts a recipient's unread notificaciones
func (r *NotificacionRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notificaciones WHERE user_id = $1 AND leida = false`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notificaciones: %w", err)
	}
	return count, nil
}

// MarkRead marks one notificacion read, scoped to its recipient
func (r *NotificacionRepository) MarkRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notificaciones SET leida = true WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notificacion read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notificacion not found")
	}
	return nil
}

// MarkAllRead marks all of a recipient's notificaciones read
func (r *NotificacionRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notificaciones SET leida = true WHERE user_id = $1 AND leida = false`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark notificaciones read: %w", err)
	}
	return nil
}
