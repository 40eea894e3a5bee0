package handlers

import (
	"net/http"

	"roa-marketplace-backend/internal/middleware"
	"roa-marketplace-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// NotificacionHandler handles notification HTTP requests
type NotificacionHandler struct {
	notificacionService *services.NotificacionService
}

// NewNotificacionHandler creates a new notificacion handler
func NewNotificacionHandler(notificacionService *services.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notificacionService: notificacionService}
}

// List handles GET /api/v1/notificaciones
func (h *NotificacionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	notificaciones, err := h.notificacionService.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	unread, err := h.notificacionService.UnreadCount(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notificaciones": notificaciones,
		"unread_count":   unread,
	})
}

// MarkRead handles POST /api/v1/notificaciones/{notificacion_id}/read
func (h *NotificacionHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	notificacionID := chi.URLParam(r, "notificacion_id")

	if err := h.notificacionService.MarkRead(r.Context(), notificacionID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/v1/notificaciones/read-all
func (h *NotificacionHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.notificacionService.MarkAllRead(r.Context(), userID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
