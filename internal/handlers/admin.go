package handlers

import (
	"encoding/json"
	"net/http"

	"roa-marketplace-backend/internal/middleware"
	"roa-marketplace-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AdminHandler handles moderation dashboard HTTP requests. All routes sit
// behind the RequireAdmin middleware.
type AdminHandler struct {
	adminService      *services.AdminService
	moderationService *services.ModerationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, moderationService *services.ModerationService) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		moderationService: moderationService,
	}
}

// ListProfiles handles GET /api/v1/admin/profiles
func (h *AdminHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.adminService.ListProfiles(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

// ListLotes handles GET /api/v1/admin/lotes
func (h *AdminHandler) ListLotes(w http.ResponseWriter, r *http.Request) {
	lotes, err := h.adminService.ListLotes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lotes)
}

// ListProductos handles GET /api/v1/admin/productos
func (h *AdminHandler) ListProductos(w http.ResponseWriter, r *http.Request) {
	productos, err := h.adminService.ListProductos(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, productos)
}

// ListOrdenes handles GET /api/v1/admin/ordenes
func (h *AdminHandler) ListOrdenes(w http.ResponseWriter, r *http.Request) {
	ordenes, err := h.adminService.ListOrdenes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ordenes)
}

// ListCalificaciones handles GET /api/v1/admin/calificaciones
func (h *AdminHandler) ListCalificaciones(w http.ResponseWriter, r *http.Request) {
	calificaciones, err := h.adminService.ListCalificaciones(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, calificaciones)
}

// ListAuditorias handles GET /api/v1/admin/auditorias
func (h *AdminHandler) ListAuditorias(w http.ResponseWriter, r *http.Request) {
	auditorias, err := h.adminService.ListAuditorias(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, auditorias)
}

// ModerationRequest represents the request body for a status override
type ModerationRequest struct {
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	NewStatus  string  `json:"new_status"`
	Notes      *string `json:"notes,omitempty"`
}

// ApplyModeration handles POST /api/v1/admin/moderation
func (h *AdminHandler) ApplyModeration(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.moderationService.ApplyStatus(r.Context(), userID, req.EntityType, req.EntityID, req.NewStatus, req.Notes)
	if err != nil {
		log.Error().
			Err(err).
			Str("admin_id", userID).
			Str("entity_type", req.EntityType).
			Str("entity_id", req.EntityID).
			Msg("Failed to apply moderation status")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("admin_id", userID).
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Str("new_status", req.NewStatus).
		Msg("Moderation status applied")
	respondJSON(w, http.StatusOK, record)
}
