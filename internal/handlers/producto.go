package handlers

import (
	"encoding/json"
	"net/http"

	"roa-marketplace-backend/internal/middleware"
	"roa-marketplace-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ProductoHandler handles producto-related HTTP requests
type ProductoHandler struct {
	productoService *services.ProductoService
}

// NewProductoHandler creates a new producto handler
func NewProductoHandler(productoService *services.ProductoService) *ProductoHandler {
	return &ProductoHandler{productoService: productoService}
}

// Create handles POST /api/v1/productos
func (h *ProductoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req services.ProductoInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	producto, err := h.productoService.Create(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("producto_id", producto.ID).Msg("Producto created")
	respondJSON(w, http.StatusCreated, producto)
}

// List handles GET /api/v1/productos. With ?mine=true it returns the
// caller's own productos, otherwise the public catalog.
func (h *ProductoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if r.URL.Query().Get("mine") == "true" {
		productos, err := h.productoService.ListMine(r.Context(), userID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, productos)
		return
	}

	productos, err := h.productoService.ListAvailable(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, productos)
}

// Update handles PATCH /api/v1/productos/{producto_id}
func (h *ProductoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productoID := chi.URLParam(r, "producto_id")

	var req services.ProductoInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	producto, err := h.productoService.Update(r.Context(), productoID, userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, producto)
}

// PresignImageRequest represents the request body for an image slot
type PresignImageRequest struct {
	ContentType string `json:"content_type"`
}

// PresignImage handles POST /api/v1/productos/{producto_id}/images
func (h *ProductoHandler) PresignImage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productoID := chi.URLParam(r, "producto_id")

	var req PresignImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	upload, err := h.productoService.PresignImage(r.Context(), productoID, userID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("producto_id", productoID).Msg("Failed to presign image upload")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, upload)
}
