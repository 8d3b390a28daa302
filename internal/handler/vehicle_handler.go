package handler

import (
	"encoding/json"
	"net/http"

	"autofine/internal/domain"
	"autofine/internal/service"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
}

func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleService.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid vehicle ID"})
		return
	}

	vehicle, err := h.vehicleService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if vehicle == nil {
		respondNotFound(w, "Vehicle")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateVehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid vehicle ID"})
		return
	}

	var in domain.UpdateVehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	if vehicle == nil {
		respondNotFound(w, "Vehicle")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid vehicle ID"})
		return
	}

	deleted, err := h.vehicleService.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondNotFound(w, "Vehicle")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
