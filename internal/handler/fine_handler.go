package handler

import (
	"encoding/json"
	"net/http"

	"autofine/internal/domain"
	"autofine/internal/service"
)

type FineHandler struct {
	fineService *service.FineService
}

func NewFineHandler(fineService *service.FineService) *FineHandler {
	return &FineHandler{fineService: fineService}
}

type searchResponse struct {
	Vehicle *domain.Vehicle `json:"vehicle"`
	Fines   []domain.Fine   `json:"fines"`
}

// SearchFines is the public consultation endpoint. At least one criterion is
// required here, before the query reaches the repository; no match is a
// normal empty result, not an error.
func (h *FineHandler) SearchFines(w http.ResponseWriter, r *http.Request) {
	criteria := domain.FineSearchCriteria{
		Plate: r.URL.Query().Get("plate"),
		Owner: r.URL.Query().Get("owner"),
		Model: r.URL.Query().Get("model"),
	}

	if criteria.Empty() {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Provide at least a plate, owner or model to search",
		})
		return
	}

	vehicle, fines, err := h.fineService.Search(r.Context(), criteria)
	if err != nil {
		respondError(w, err)
		return
	}
	if fines == nil {
		fines = []domain.Fine{}
	}

	respondJSON(w, http.StatusOK, searchResponse{Vehicle: vehicle, Fines: fines})
}

func (h *FineHandler) ListFines(w http.ResponseWriter, r *http.Request) {
	fines, err := h.fineService.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, fines)
}

func (h *FineHandler) GetFine(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid fine ID"})
		return
	}

	fine, err := h.fineService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if fine == nil {
		respondNotFound(w, "Fine")
		return
	}

	respondJSON(w, http.StatusOK, fine)
}

func (h *FineHandler) CreateFine(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateFineInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	fine, err := h.fineService.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, fine)
}

func (h *FineHandler) UpdateFine(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid fine ID"})
		return
	}

	var in domain.UpdateFineInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	fine, err := h.fineService.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	if fine == nil {
		respondNotFound(w, "Fine")
		return
	}

	respondJSON(w, http.StatusOK, fine)
}

func (h *FineHandler) DeleteFine(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid fine ID"})
		return
	}

	deleted, err := h.fineService.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondNotFound(w, "Fine")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
