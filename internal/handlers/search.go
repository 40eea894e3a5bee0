package handlers

import (
	"encoding/json"
	"net/http"

	"roa-marketplace-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// SearchHandler handles proximity search requests
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchLotes handles POST /api/v1/search/lotes
func (h *SearchHandler) SearchLotes(w http.ResponseWriter, r *http.Request) {
	var req services.SearchFilters
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	results, err := h.searchService.Search(r.Context(), req)
	if err != nil {
		if !services.IsValidation(err) {
			log.Error().Err(err).Msg("Search failed")
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
