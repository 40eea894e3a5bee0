package services

import (
	"context"
	"time"

	"roa-marketplace-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PushSender delivers a push notification to a device
type PushSender interface {
	Send(deviceToken, title, body string) error
}

// RealtimeSender delivers a notificacion over the live channel
type RealtimeSender interface {
	SendNotificacion(userID string, n *models.Notificacion) error
	IsOnline(userID string) bool
}

// NotificacionService stores notifications and fans them out. The stored
// row is the source of truth; websocket and push delivery are best effort.
type NotificacionService struct {
	notificaciones NotificacionStore
	profiles       ProfileStore
	hub            RealtimeSender
	push           PushSender
}

// NewNotificacionService creates a new notificacion service. hub and push
// may be nil when the corresponding channel is not configured.
func NewNotificacionService(notificaciones NotificacionStore, profiles ProfileStore, hub RealtimeSender, push PushSender) *NotificacionService {
	return &NotificacionService{
		notificaciones: notificaciones,
		profiles:       profiles,
		hub:            hub,
		push:           push,
	}
}

// Notify creates a notification for userID and attempts live delivery
func (s *NotificacionService) Notify(ctx context.Context, userID string, ordenID *string, titulo, mensaje, tipo string) {
	n := &models.Notificacion{
		ID:        uuid.New().String(),
		UserID:    userID,
		OrdenID:   ordenID,
		Titulo:    titulo,
		Mensaje:   mensaje,
		Tipo:      tipo,
		CreatedAt: time.Now(),
	}
	if err := s.notificaciones.Create(ctx, n); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to store notificacion")
		return
	}

	if s.hub != nil && s.hub.IsOnline(userID) {
		if err := s.hub.SendNotificacion(userID, n); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to push notificacion over websocket")
		}
	}

	if s.push != nil {
		profile, err := s.profiles.GetByID(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to load profile for push")
			return
		}
		if profile.PushToken != nil {
			if err := s.push.Send(*profile.PushToken, titulo, mensaje); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("Failed to send push notification")
			}
		}
	}
}

// ListByUser retrieves the recipient's notifications, newest first
func (s *NotificacionService) ListByUser(ctx context.Context, userID string) ([]*models.Notificacion, error) {
	return s.notificaciones.ListByUser(ctx, userID)
}

// UnreadCount counts the recipient's unread notifications
func (s *NotificacionService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificaciones.UnreadCount(ctx, userID)
}

// MarkRead marks one notification read, scoped to the recipient
func (s *NotificacionService) MarkRead(ctx context.Context, id, userID string) error {
	return s.notificaciones.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all the recipient's notifications read
func (s *NotificacionService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificaciones.MarkAllRead(ctx, userID)
}
