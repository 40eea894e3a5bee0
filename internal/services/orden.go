package services

import (
	"context"
	"fmt"
	"time"

	"roa-marketplace-backend/internal/models"

	"github.com/google/uuid"
)

// OrdenService handles the order lifecycle between two parties
type OrdenService struct {
	ordenes   OrdenStore
	lotes     LoteStore
	productos ProductoStore
	notifier  Notifier
}

// NewOrdenService creates a new orden service
func NewOrdenService(ordenes OrdenStore, lotes LoteStore, productos ProductoStore, notifier Notifier) *OrdenService {
	return &OrdenService{
		ordenes:   ordenes,
		lotes:     lotes,
		productos: productos,
		notifier:  notifier,
	}
}

// OrdenInput carries the fields of a new exchange request
type OrdenInput struct {
	TipoItem             models.ItemType `json:"tipo_item"`
	ItemID               string          `json:"item_id"`
	CantidadSolicitada   int             `json:"cantidad_solicitada"`
	FechaPropuestaRetiro *time.Time      `json:"fecha_propuesta_retiro,omitempty"`
	MensajeSolicitud     *string         `json:"mensaje_solicitud,omitempty"`
}

// Create submits an exchange request against a lote or producto. The item
// owner becomes the provider; requesting your own item is rejected.
func (s *OrdenService) Create(ctx context.Context, solicitanteID string, input OrdenInput) (*models.Orden, error) {
	if !input.TipoItem.Valid() {
		return nil, validationErr("tipo_item must be lote or producto")
	}
	if input.ItemID == "" {
		return nil, validationErr("item_id is required")
	}
	if input.CantidadSolicitada < 1 {
		return nil, validationErr("cantidad_solicitada must be at least 1")
	}

	var proveedorID string
	switch input.TipoItem {
	case models.ItemLote:
		lote, err := s.lotes.GetByID(ctx, input.ItemID)
		if err != nil {
			return nil, err
		}
		if lote.Estado != models.BatchDisponible || lote.Status == models.ModerationRechazado {
			return nil, ErrItemUnavailable
		}
		proveedorID = lote.UserID
	case models.ItemProducto:
		producto, err := s.productos.GetByID(ctx, input.ItemID)
		if err != nil {
			return nil, err
		}
		if !producto.Disponible || producto.Status == models.ModerationRechazado {
			return nil, ErrItemUnavailable
		}
		proveedorID = producto.UserID
	}
	if proveedorID == solicitanteID {
		return nil, ErrSelfOrder
	}

	now := time.Now()
	orden := &models.Orden{
		ID:                   uuid.New().String(),
		SolicitanteID:        solicitanteID,
		ProveedorID:          proveedorID,
		TipoItem:             input.TipoItem,
		ItemID:               input.ItemID,
		CantidadSolicitada:   input.CantidadSolicitada,
		FechaPropuestaRetiro: input.FechaPropuestaRetiro,
		MensajeSolicitud:     input.MensajeSolicitud,
		Estado:               models.OrderPendiente,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.ordenes.Create(ctx, orden); err != nil {
		return nil, fmt.Errorf("failed to create orden: %w", err)
	}

	s.notifier.Notify(ctx, proveedorID, &orden.ID,
		"Nueva solicitud de intercambio",
		fmt.Sprintf("Has recibido una solicitud por %d unidad(es)", orden.CantidadSolicitada),
		"orden_solicitud")
	return orden, nil
}

// ListMine retrieves the orders the user participates in, either role
func (s *OrdenService) ListMine(ctx context.Context, userID string) ([]*models.Orden, error) {
	return s.ordenes.ListByParticipant(ctx, userID)
}

// Accept moves a pending order to accepted. Only the provider may accept;
// accepting a lote order reserves the lote.
func (s *OrdenService) Accept(ctx context.Context, ordenID, userID string, mensaje *string) (*models.Orden, error) {
	orden, err := s.ordenes.GetByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if orden.ProveedorID != userID {
		return nil, ErrNotParticipant
	}
	if !orden.Estado.CanTransitionTo(models.OrderAceptada) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, orden.Estado, models.OrderAceptada)
	}

	if err := s.transition(ctx, orden, models.OrderAceptada, mensaje, models.BatchReservado); err != nil {
		return nil, err
	}
	orden.Estado = models.OrderAceptada
	orden.MensajeRespuesta = mensaje

	s.notifier.Notify(ctx, orden.SolicitanteID, &orden.ID,
		"Solicitud aceptada",
		"Tu solicitud de intercambio fue aceptada",
		"orden_aceptada")
	return orden, nil
}

// Cancel cancels a pending order. Either participant may cancel.
func (s *OrdenService) Cancel(ctx context.Context, ordenID, userID string) (*models.Orden, error) {
	orden, err := s.ordenes.GetByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if orden.SolicitanteID != userID && orden.ProveedorID != userID {
		return nil, ErrNotParticipant
	}
	if !orden.Estado.CanTransitionTo(models.OrderCancelada) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, orden.Estado, models.OrderCancelada)
	}

	if err := s.ordenes.UpdateEstado(ctx, ordenID, models.OrderCancelada, nil); err != nil {
		return nil, err
	}
	orden.Estado = models.OrderCancelada

	s.notifier.Notify(ctx, orden.CounterpartyOf(userID), &orden.ID,
		"Solicitud cancelada",
		"La solicitud de intercambio fue cancelada",
		"orden_cancelada")
	return orden, nil
}

// Complete marks an accepted order completed. Either participant may do
// this; completing a lote order marks the lote collected and opens the
// rating window for both parties.
func (s *OrdenService) Complete(ctx context.Context, ordenID, userID string) (*models.Orden, error) {
	orden, err := s.ordenes.GetByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if orden.SolicitanteID != userID && orden.ProveedorID != userID {
		return nil, ErrNotParticipant
	}
	if !orden.Estado.CanTransitionTo(models.OrderCompletada) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, orden.Estado, models.OrderCompletada)
	}

	if err := s.transition(ctx, orden, models.OrderCompletada, nil, models.BatchRecogido); err != nil {
		return nil, err
	}
	orden.Estado = models.OrderCompletada

	s.notifier.Notify(ctx, orden.CounterpartyOf(userID), &orden.ID,
		"Orden completada",
		"La orden fue marcada como completada. Ya puedes calificar a tu contraparte",
		"orden_completada")
	return orden, nil
}

// transition writes the order state change. For lote orders the linked
// lote move (reservado on accept, recogido on complete) rides in the same
// transaction, so neither write lands without the other. A lote that
// cannot make the move is left alone rather than failing the transition.
func (s *OrdenService) transition(ctx context.Context, orden *models.Orden, estado models.OrderStatus, mensaje *string, loteEstado models.BatchStatus) error {
	if orden.TipoItem != models.ItemLote {
		return s.ordenes.UpdateEstado(ctx, orden.ID, estado, mensaje)
	}
	lote, err := s.lotes.GetByID(ctx, orden.ItemID)
	if err != nil {
		return err
	}
	if !lote.Estado.CanTransitionTo(loteEstado) {
		return s.ordenes.UpdateEstado(ctx, orden.ID, estado, mensaje)
	}
	return s.ordenes.UpdateEstadoWithLote(ctx, orden.ID, estado, mensaje, orden.ItemID, loteEstado)
}
