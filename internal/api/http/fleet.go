package http

import (
	"net/http"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type fleetHandler struct {
	fleetSvc service.FleetService
}

type idRequest struct {
	ID int32 `json:"id"`
}

type listRequest struct {
	Status   string `json:"status,omitempty"`
	Search   string `json:"search,omitempty"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

func validateVehicle(v *domain.Vehicle) string {
	switch {
	case v.Make == "" || v.Model == "":
		return "make and model are required"
	case v.LicensePlate == "":
		return "license plate is required"
	case v.Year < 1950 || v.Year > int32(time.Now().Year())+1:
		return "year is out of range"
	case v.DailyRate.IsNegative():
		return "daily rate must not be negative"
	case v.FuelLevel < 0 || v.FuelLevel > 8:
		return "fuel level must be between 0 and 8 eighths"
	case v.OdometerKm < 0:
		return "odometer must not be negative"
	}
	return ""
}

func (h *fleetHandler) add(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if !decode(w, r, &v) {
		return
	}
	if msg := validateVehicle(&v); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
		return
	}
	v.TenantID = tenantID(r.Context())
	if err := h.fleetSvc.AddVehicle(r.Context(), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

type vehicleResponse struct {
	Vehicle *domain.Vehicle       `json:"vehicle"`
	Images  []domain.VehicleImage `json:"images,omitempty"`
}

func (h *fleetHandler) get(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	v, images, err := h.fleetSvc.GetVehicle(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleResponse{Vehicle: v, Images: images})
}

func (h *fleetHandler) update(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if !decode(w, r, &v) {
		return
	}
	if msg := validateVehicle(&v); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
		return
	}
	v.TenantID = tenantID(r.Context())
	if err := h.fleetSvc.UpdateVehicle(r.Context(), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *fleetHandler) retire(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.fleetSvc.RetireVehicle(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *fleetHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.fleetSvc.DeleteVehicle(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type vehicleListResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
	Total    int32            `json:"total"`
}

func (h *fleetHandler) list(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !decode(w, r, &req) {
		return
	}
	vehicles, total, err := h.fleetSvc.ListVehicles(r.Context(), tenantID(r.Context()), req.Status, req.Page, req.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleListResponse{Vehicles: vehicles, Total: total})
}
