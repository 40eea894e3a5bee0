package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"roa-marketplace-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondServiceError maps a service error to its HTTP status. Validation
// rejections are 400, missing resources 404, role and ownership failures
// 403, business-rule conflicts 409, the rest 500.
func respondServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case services.IsValidation(err):
		statusCode = http.StatusBadRequest
	case errors.Is(err, services.ErrNotAdmin),
		errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrNotParticipant):
		statusCode = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrSelfOrder),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrOrderNotCompleted),
		errors.Is(err, services.ErrDuplicateRating):
		statusCode = http.StatusConflict
	case errors.Is(err, services.ErrSuspended):
		statusCode = http.StatusForbidden
	case strings.Contains(err.Error(), "not found"):
		statusCode = http.StatusNotFound
	}
	respondError(w, err.Error(), statusCode)
}
