package handlers

import (
	"encoding/json"
	"net/http"

	"roa-marketplace-backend/internal/middleware"
	"roa-marketplace-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CalificacionHandler handles rating HTTP requests
type CalificacionHandler struct {
	calificacionService *services.CalificacionService
}

// NewCalificacionHandler creates a new calificacion handler
func NewCalificacionHandler(calificacionService *services.CalificacionService) *CalificacionHandler {
	return &CalificacionHandler{calificacionService: calificacionService}
}

// Create handles POST /api/v1/calificaciones
func (h *CalificacionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req services.CalificacionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	calificacion, err := h.calificacionService.Create(r.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("orden_id", req.OrdenID).Msg("Failed to create calificacion")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, calificacion)
}

// ListForUser handles GET /api/v1/users/{user_id}/calificaciones
func (h *CalificacionHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	calificadoID := chi.URLParam(r, "user_id")

	calificaciones, err := h.calificacionService.ListForUser(r.Context(), calificadoID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, calificaciones)
}

// RatingForUser handles GET /api/v1/users/{user_id}/rating
func (h *CalificacionHandler) RatingForUser(w http.ResponseWriter, r *http.Request) {
	calificadoID := chi.URLParam(r, "user_id")

	rating, err := h.calificacionService.RatingForUser(r.Context(), calificadoID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rating)
}

// Report handles POST /api/v1/calificaciones/{calificacion_id}/report
func (h *CalificacionHandler) Report(w http.ResponseWriter, r *http.Request) {
	calificacionID := chi.URLParam(r, "calificacion_id")

	if err := h.calificacionService.Report(r.Context(), calificacionID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/calificaciones/{calificacion_id}
func (h *CalificacionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	calificacionID := chi.URLParam(r, "calificacion_id")

	if err := h.calificacionService.Delete(r.Context(), calificacionID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
