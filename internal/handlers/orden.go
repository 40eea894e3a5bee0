package handlers

import (
	"encoding/json"
	"net/http"

	"roa-marketplace-backend/internal/middleware"
	"roa-marketplace-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// OrdenHandler handles order lifecycle HTTP requests
type OrdenHandler struct {
	ordenService *services.OrdenService
}

// NewOrdenHandler creates a new orden handler
func NewOrdenHandler(ordenService *services.OrdenService) *OrdenHandler {
	return &OrdenHandler{ordenService: ordenService}
}

// Create handles POST /api/v1/ordenes
func (h *OrdenHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req services.OrdenInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	orden, err := h.ordenService.Create(r.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("item_id", req.ItemID).Msg("Failed to create orden")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("orden_id", orden.ID).Msg("Orden created")
	respondJSON(w, http.StatusCreated, orden)
}

// ListMine handles GET /api/v1/ordenes
func (h *OrdenHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	ordenes, err := h.ordenService.ListMine(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ordenes)
}

// AcceptRequest represents the optional response message on accept
type AcceptRequest struct {
	MensajeRespuesta *string `json:"mensaje_respuesta,omitempty"`
}

// Accept handles POST /api/v1/ordenes/{orden_id}/accept
func (h *OrdenHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ordenID := chi.URLParam(r, "orden_id")

	var req AcceptRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	orden, err := h.ordenService.Accept(r.Context(), ordenID, userID, req.MensajeRespuesta)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("orden_id", ordenID).Msg("Failed to accept orden")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orden)
}

// Cancel handles POST /api/v1/ordenes/{orden_id}/cancel
func (h *OrdenHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ordenID := chi.URLParam(r, "orden_id")

	orden, err := h.ordenService.Cancel(r.Context(), ordenID, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("orden_id", ordenID).Msg("Failed to cancel orden")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orden)
}

// Complete handles POST /api/v1/ordenes/{orden_id}/complete
func (h *OrdenHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ordenID := chi.URLParam(r, "orden_id")

	orden, err := h.ordenService.Complete(r.Context(), ordenID, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("orden_id", ordenID).Msg("Failed to complete orden")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orden)
}
