package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type maintenanceHandler struct {
	maintSvc service.MaintenanceService
}

type scheduleTaskRequest struct {
	VehicleID   int32  `json:"vehicle_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	DueOn       string `json:"due_on,omitempty"` // YYYY-MM-DD
	DueAtKm     *int32 `json:"due_at_km,omitempty"`
}

func (h *maintenanceHandler) schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleTaskRequest
	if !decode(w, r, &req) {
		return
	}
	m := &domain.MaintenanceRecord{
		TenantID:    tenantID(r.Context()),
		VehicleID:   req.VehicleID,
		Type:        req.Type,
		Description: req.Description,
		DueAtKm:     req.DueAtKm,
	}
	if req.DueOn != "" {
		t, ok := parseDate(w, req.DueOn, "due_on")
		if !ok {
			return
		}
		m.DueOn = &t
	}
	if err := h.maintSvc.ScheduleTask(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *maintenanceHandler) get(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.maintSvc.GetTask(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *maintenanceHandler) update(w http.ResponseWriter, r *http.Request) {
	var m domain.MaintenanceRecord
	if !decode(w, r, &m) {
		return
	}
	m.TenantID = tenantID(r.Context())
	if err := h.maintSvc.UpdateTask(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &m)
}

type completeTaskRequest struct {
	ID          int32           `json:"id"`
	Cost        decimal.Decimal `json:"cost"`
	CompletedOn string          `json:"completed_on,omitempty"`
}

func (h *maintenanceHandler) complete(w http.ResponseWriter, r *http.Request) {
	var req completeTaskRequest
	if !decode(w, r, &req) {
		return
	}
	var completedOn time.Time
	if req.CompletedOn != "" {
		t, ok := parseDate(w, req.CompletedOn, "completed_on")
		if !ok {
			return
		}
		completedOn = t
	}
	m, err := h.maintSvc.CompleteTask(r.Context(), tenantID(r.Context()), req.ID, req.Cost, completedOn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *maintenanceHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.maintSvc.DeleteTask(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type listByVehicleRequest struct {
	VehicleID int32 `json:"vehicle_id"`
}

func (h *maintenanceHandler) listByVehicle(w http.ResponseWriter, r *http.Request) {
	var req listByVehicleRequest
	if !decode(w, r, &req) {
		return
	}
	records, err := h.maintSvc.ListByVehicle(r.Context(), tenantID(r.Context()), req.VehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *maintenanceHandler) suggestSchedule(w http.ResponseWriter, r *http.Request) {
	var req listByVehicleRequest
	if !decode(w, r, &req) {
		return
	}
	tasks, err := h.maintSvc.SuggestSchedule(r.Context(), tenantID(r.Context()), req.VehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
