package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roa-marketplace-backend/internal/models"
	"roa-marketplace-backend/internal/repository"

	"github.com/google/uuid"
)

// CalificacionService gates and records ratings between order participants
type CalificacionService struct {
	calificaciones CalificacionStore
	ordenes        OrdenStore
}

// NewCalificacionService creates a new calificacion service
func NewCalificacionService(calificaciones CalificacionStore, ordenes OrdenStore) *CalificacionService {
	return &CalificacionService{
		calificaciones: calificaciones,
		ordenes:        ordenes,
	}
}

// CalificacionInput carries a rating submission
type CalificacionInput struct {
	OrdenID      string  `json:"orden_id"`
	CalificadoID string  `json:"calificado_id"`
	ProductoID   *string `json:"producto_id,omitempty"`
	Puntuacion   int     `json:"puntuacion"`
	Comentario   *string `json:"comentario,omitempty"`
}

// Create submits a rating. Each participant of a completed order may rate
// the other exactly once; every failing condition rejects with its own
// reason rather than silently doing nothing.
func (s *CalificacionService) Create(ctx context.Context, calificadorID string, input CalificacionInput) (*models.Calificacion, error) {
	if input.Puntuacion < 1 || input.Puntuacion > 5 {
		return nil, validationErr("puntuacion must be between 1 and 5")
	}
	if input.OrdenID == "" {
		return nil, validationErr("orden_id is required")
	}
	if input.CalificadoID == "" {
		return nil, validationErr("calificado_id is required")
	}

	orden, err := s.ordenes.GetByID(ctx, input.OrdenID)
	if err != nil {
		return nil, err
	}
	if orden.Estado != models.OrderCompletada {
		return nil, ErrOrderNotCompleted
	}
	if !orden.IsParticipant(calificadorID) {
		return nil, ErrNotParticipant
	}
	if orden.CounterpartyOf(calificadorID) != input.CalificadoID {
		return nil, validationErr("calificado_id must be the other order participant")
	}
	if input.ProductoID != nil && (orden.TipoItem != models.ItemProducto || orden.ItemID != *input.ProductoID) {
		return nil, validationErr("producto_id does not match the order's item")
	}

	exists, err := s.calificaciones.Exists(ctx, calificadorID, input.CalificadoID, input.OrdenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior rating: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRating
	}

	now := time.Now()
	calificacion := &models.Calificacion{
		ID:            uuid.New().String(),
		CalificadorID: calificadorID,
		CalificadoID:  input.CalificadoID,
		OrdenID:       input.OrdenID,
		ProductoID:    input.ProductoID,
		Puntuacion:    input.Puntuacion,
		Comentario:    input.Comentario,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// The Exists check above races against a concurrent submission; the
	// unique constraint is the authority.
	if err := s.calificaciones.Create(ctx, calificacion); err != nil {
		if errors.Is(err, repository.ErrDuplicateCalificacion) {
			return nil, ErrDuplicateRating
		}
		return nil, fmt.Errorf("failed to create calificacion: %w", err)
	}
	return calificacion, nil
}

// ListForUser retrieves the visible ratings a user has received
func (s *CalificacionService) ListForUser(ctx context.Context, calificadoID string) ([]*models.Calificacion, error) {
	return s.calificaciones.ListForUser(ctx, calificadoID)
}

// UserRating summarizes a user's received ratings
type UserRating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RatingForUser returns the backend-computed aggregate for a user
func (s *CalificacionService) RatingForUser(ctx context.Context, calificadoID string) (*UserRating, error) {
	avg, err := s.calificaciones.AverageForUser(ctx, calificadoID)
	if err != nil {
		return nil, err
	}
	count, err := s.calificaciones.CountForUser(ctx, calificadoID)
	if err != nil {
		return nil, err
	}
	return &UserRating{Average: avg, Count: count}, nil
}

// Report flags a rating so it drops out of public listings
func (s *CalificacionService) Report(ctx context.Context, id string) error {
	return s.calificaciones.SetReportada(ctx, id, true)
}

// Delete removes a rating. The repository scopes the delete to the author.
func (s *CalificacionService) Delete(ctx context.Context, id, calificadorID string) error {
	return s.calificaciones.Delete(ctx, id, calificadorID)
}
