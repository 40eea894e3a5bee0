package handlers

import (
	"encoding/json"
	"net/http"

	"roa-marketplace-backend/internal/middleware"
	"roa-marketplace-backend/internal/models"
	"roa-marketplace-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// LoteHandler handles lote-related HTTP requests
type LoteHandler struct {
	loteService *services.LoteService
}

// NewLoteHandler creates a new lote handler
func NewLoteHandler(loteService *services.LoteService) *LoteHandler {
	return &LoteHandler{loteService: loteService}
}

// Create handles POST /api/v1/lotes
func (h *LoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req services.LoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lote, err := h.loteService.Create(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("lote_id", lote.ID).Msg("Lote created")
	respondJSON(w, http.StatusCreated, lote)
}

// ListMine handles GET /api/v1/lotes
func (h *LoteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	lotes, err := h.loteService.ListMine(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list lotes")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lotes)
}

// Update handles PATCH /api/v1/lotes/{lote_id}
func (h *LoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loteID := chi.URLParam(r, "lote_id")

	var req services.LoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lote, err := h.loteService.Update(r.Context(), loteID, userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lote)
}

// ChangeStatusRequest represents the request body for a lifecycle change
type ChangeStatusRequest struct {
	Estado models.BatchStatus `json:"estado"`
}

// ChangeStatus handles POST /api/v1/lotes/{lote_id}/status
func (h *LoteHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loteID := chi.URLParam(r, "lote_id")

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lote, err := h.loteService.ChangeStatus(r.Context(), loteID, userID, req.Estado)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("lote_id", loteID).Msg("Failed to change lote status")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lote)
}

// Delete handles DELETE /api/v1/lotes/{lote_id}
func (h *LoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loteID := chi.URLParam(r, "lote_id")

	if err := h.loteService.Delete(r.Context(), loteID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
