package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"autofine/internal/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError maps domain failures to status codes: validation 400,
// duplicate plate 409, dangling vehicle reference 404. Anything else is a
// storage failure, logged here once and reported as a generic 500.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: validationErr.Error()})
		return
	}

	var duplicateErr *domain.DuplicatePlateError
	if errors.As(err, &duplicateErr) {
		respondJSON(w, http.StatusConflict, errorResponse{Message: duplicateErr.Error()})
		return
	}

	var referenceErr *domain.InvalidReferenceError
	if errors.As(err, &referenceErr) {
		respondJSON(w, http.StatusNotFound, errorResponse{Message: referenceErr.Error()})
		return
	}

	log.Printf("Storage error: %v", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}

func respondNotFound(w http.ResponseWriter, what string) {
	respondJSON(w, http.StatusNotFound, errorResponse{Message: what + " not found"})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
