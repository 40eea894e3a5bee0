package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roa-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Entity type labels accepted by the moderation override.
const (
	EntityLote     = "lote"
	EntityProducto = "producto"
	EntityUsuario  = "usuario"
)

// ModerationRepository applies admin status overrides. The entity update
// and the audit record are written in one transaction so neither can land
// without the other.
type ModerationRepository struct {
	db Querier
}

// NewModerationRepository creates a new moderation repository
func NewModerationRepository(db Querier) *ModerationRepository {
	return &ModerationRepository{db: db}
}

// ApplyStatus sets the moderation-relevant field of the target entity and
// appends the audit record atomically. Returns the written record.
func (r *ModerationRepository) ApplyStatus(ctx context.Context, adminID, entityType, entityID, newStatus string, notes *string) (*models.AuditRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin moderation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var previous string
	switch entityType {
	case EntityLote:
		err = tx.QueryRow(ctx,
			`UPDATE lotes SET status = $1, updated_at = now() WHERE id = $2
			 RETURNING (SELECT status FROM lotes WHERE id = $2)`,
			newStatus, entityID).Scan(&previous)
	case EntityProducto:
		err = tx.QueryRow(ctx,
			`UPDATE productos SET status = $1, updated_at = now() WHERE id = $2
			 RETURNING (SELECT status FROM productos WHERE id = $2)`,
			newStatus, entityID).Scan(&previous)
	case EntityUsuario:
		var wasActive, wasVerified bool
		err = tx.QueryRow(ctx,
			`UPDATE profiles
			 SET is_active = ($1 != 'suspendido'),
			     is_verified = CASE WHEN $1 = 'verificado' THEN true ELSE is_verified END,
			     updated_at = now()
			 WHERE id = $2
			 RETURNING (SELECT is_active FROM profiles WHERE id = $2),
			           (SELECT is_verified FROM profiles WHERE id = $2)`,
			newStatus, entityID).Scan(&wasActive, &wasVerified)
		switch {
		case err != nil:
		case !wasActive:
			previous = string(models.UserSuspendido)
		case wasVerified:
			previous = string(models.UserVerificado)
		default:
			previous = string(models.UserActivo)
		}
	default:
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s not found", entityType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s status: %w", entityType, err)
	}

	record := &models.AuditRecord{
		ID:             uuid.New().String(),
		AdminID:        adminID,
		EntityType:     entityType,
		EntityID:       entityID,
		Action:         newStatus,
		PreviousStatus: &previous,
		NewStatus:      &newStatus,
		Notes:          notes,
		CreatedAt:      time.Now(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO auditoria_admin (id, admin_id, entity_type, entity_id, action,
			previous_status, new_status, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.AdminID, record.EntityType, record.EntityID, record.Action,
		record.PreviousStatus, record.NewStatus, record.Notes, record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write audit record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit moderation tx: %w", err)
	}
	return record, nil
}
