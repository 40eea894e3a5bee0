package services

import (
	"context"
	"fmt"

	"roa-marketplace-backend/internal/models"
)

// Entity type labels the moderation override accepts.
const (
	EntityLote     = "lote"
	EntityProducto = "producto"
	EntityUsuario  = "usuario"
)

// ModerationService applies admin status overrides with an audit trail
type ModerationService struct {
	profiles   ProfileStore
	moderation ModerationStore
}

// NewModerationService creates a new moderation service
func NewModerationService(profiles ProfileStore, moderation ModerationStore) *ModerationService {
	return &ModerationService{
		profiles:   profiles,
		moderation: moderation,
	}
}

// ApplyStatus sets the moderation status of a lote, producto or usuario.
// The actor's admin flag is read from the profiles row on every call;
// non-admins are rejected before anything is written. The entity update
// and the audit record commit together or not at all.
func (s *ModerationService) ApplyStatus(ctx context.Context, actorID, entityType, entityID, newStatus string, notes *string) (*models.AuditRecord, error) {
	isAdmin, err := s.profiles.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin role: %w", err)
	}
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	switch entityType {
	case EntityLote, EntityProducto:
		if !models.ModerationStatus(newStatus).Valid() {
			return nil, validationErr("new_status must be pendiente, aprobado or rechazado")
		}
	case EntityUsuario:
		if !models.UserStatus(newStatus).Valid() {
			return nil, validationErr("new_status must be activo, suspendido or verificado")
		}
	default:
		return nil, validationErr("entity_type must be lote, producto or usuario")
	}
	if entityID == "" {
		return nil, validationErr("entity_id is required")
	}

	record, err := s.moderation.ApplyStatus(ctx, actorID, entityType, entityID, newStatus, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to apply moderation status: %w", err)
	}
	return record, nil
}
