package services

import (
	"context"
	"fmt"
	"time"

	"roa-marketplace-backend/internal/models"

	"github.com/google/uuid"
)

// LoteService handles lote business logic
type LoteService struct {
	lotes    LoteStore
	notifier Notifier
}

// NewLoteService creates a new lote service
func NewLoteService(lotes LoteStore, notifier Notifier) *LoteService {
	return &LoteService{
		lotes:    lotes,
		notifier: notifier,
	}
}

// LoteInput carries the user-editable lote fields
type LoteInput struct {
	TipoResiduo     models.ROAType `json:"tipo_residuo"`
	PesoEstimado    float64        `json:"peso_estimado"`
	UbicacionLat    float64        `json:"ubicacion_lat"`
	UbicacionLng    float64        `json:"ubicacion_lng"`
	Direccion       *string        `json:"direccion,omitempty"`
	FechaDisponible *time.Time     `json:"fecha_disponible,omitempty"`
	Descripcion     *string        `json:"descripcion,omitempty"`
}

func (in *LoteInput) validate() error {
	if !in.TipoResiduo.Valid() {
		return validationErr("tipo_residuo is not a valid waste type")
	}
	if in.PesoEstimado <= 0 {
		return validationErr("peso_estimado must be greater than zero")
	}
	if in.UbicacionLat < -90 || in.UbicacionLat > 90 {
		return validationErr("ubicacion_lat must be between -90 and 90")
	}
	if in.UbicacionLng < -180 || in.UbicacionLng > 180 {
		return validationErr("ubicacion_lng must be between -180 and 180")
	}
	return nil
}

// Create registers a new lote. New lotes start disponible and await moderation.
func (s *LoteService) Create(ctx context.Context, userID string, input LoteInput) (*models.Lote, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	lote := &models.Lote{
		ID:              uuid.New().String(),
		UserID:          userID,
		TipoResiduo:     input.TipoResiduo,
		PesoEstimado:    input.PesoEstimado,
		UbicacionLat:    input.UbicacionLat,
		UbicacionLng:    input.UbicacionLng,
		Direccion:       input.Direccion,
		FechaDisponible: input.FechaDisponible,
		Descripcion:     input.Descripcion,
		Estado:          models.BatchDisponible,
		Status:          models.ModerationPendiente,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.lotes.Create(ctx, lote); err != nil {
		return nil, fmt.Errorf("failed to create lote: %w", err)
	}
	return lote, nil
}

// ListMine retrieves the caller's lotes
func (s *LoteService) ListMine(ctx context.Context, userID string) ([]*models.Lote, error) {
	return s.lotes.ListByUser(ctx, userID)
}

// Get retrieves one lote
func (s *LoteService) Get(ctx context.Context, id string) (*models.Lote, error) {
	return s.lotes.GetByID(ctx, id)
}

// Update edits a lote's fields. Only the owner may edit.
func (s *LoteService) Update(ctx context.Context, loteID, userID string, input LoteInput) (*models.Lote, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	lote, err := s.lotes.GetByID(ctx, loteID)
	if err != nil {
		return nil, err
	}
	if lote.UserID != userID {
		return nil, ErrNotOwner
	}

	lote.TipoResiduo = input.TipoResiduo
	lote.PesoEstimado = input.PesoEstimado
	lote.UbicacionLat = input.UbicacionLat
	lote.UbicacionLng = input.UbicacionLng
	lote.Direccion = input.Direccion
	lote.FechaDisponible = input.FechaDisponible
	lote.Descripcion = input.Descripcion
	if err := s.lotes.Update(ctx, lote); err != nil {
		return nil, fmt.Errorf("failed to update lote: %w", err)
	}
	return lote, nil
}

// ChangeStatus moves a lote through its lifecycle. Only the owner may do
// this, and only along the transition table; the check here is the
// authoritative one, not the client's.
func (s *LoteService) ChangeStatus(ctx context.Context, loteID, userID string, next models.BatchStatus) (*models.Lote, error) {
	if !next.Valid() {
		return nil, validationErr("estado is not a valid lifecycle state")
	}

	lote, err := s.lotes.GetByID(ctx, loteID)
	if err != nil {
		return nil, err
	}
	if lote.UserID != userID {
		return nil, ErrNotOwner
	}
	if !lote.Estado.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, lote.Estado, next)
	}

	if err := s.lotes.UpdateEstado(ctx, loteID, next); err != nil {
		return nil, err
	}
	prev := lote.Estado
	lote.Estado = next

	s.notifier.Notify(ctx, userID, nil,
		"Estado de lote actualizado",
		fmt.Sprintf("Tu lote pasó de %s a %s", prev, next),
		"lote_estado")
	return lote, nil
}

// Delete removes a lote. Only the owner may delete.
func (s *LoteService) Delete(ctx context.Context, loteID, userID string) error {
	lote, err := s.lotes.GetByID(ctx, loteID)
	if err != nil {
		return err
	}
	if lote.UserID != userID {
		return ErrNotOwner
	}
	return s.lotes.Delete(ctx, loteID)
}
