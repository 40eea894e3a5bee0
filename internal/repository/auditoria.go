package repository

import (
	"context"
	"fmt"

	"roa-marketplace-backend/internal/models"
)

// AuditoriaRepository reads the append-only admin audit log. Audit rows are
// only ever written inside the moderation transaction; there are no update
// or delete operations.
type AuditoriaRepository struct {
	db Querier
}

// NewAuditoriaRepository creates a new auditoria repository
func NewAuditoriaRepository(db Querier) *AuditoriaRepository {
	return &AuditoriaRepository{db: db}
}

// List retrieves all audit records, newest first
func (r *AuditoriaRepository) List(ctx context.Context) ([]*models.AuditRecord, error) {
	query := `
		SELECT id, admin_id, entity_type, entity_id, action, previous_status, new_status, notes, created_at
		FROM auditoria_admin
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var records []*models.AuditRecord
	for rows.Next() {
		var a models.AuditRecord
		err := rows.Scan(
			&a.ID, &a.AdminID, &a.EntityType, &a.EntityID, &a.Action,
			&a.PreviousStatus, &a.NewStatus, &a.Notes, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		records = append(records, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit records: %w", err)
	}
	return records, nil
}
