package http

import (
	"net/http"
	"time"

	"fleetrent-backend/internal/service"
)

type reportHandler struct {
	reportSvc service.ReportService
}

type reportRequest struct {
	From string `json:"from"` // YYYY-MM-DD inclusive
	To   string `json:"to"`   // YYYY-MM-DD exclusive
}

func (h *reportHandler) parseRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	var req reportRequest
	if !decode(w, r, &req) {
		return time.Time{}, time.Time{}, false
	}
	from, ok := parseDate(w, req.From, "from")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := parseDate(w, req.To, "to")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if !to.After(from) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "to must be after from"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *reportHandler) monthly(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.reportSvc.MonthlyProfitLoss(r.Context(), tenantID(r.Context()), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *reportHandler) byVehicle(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.reportSvc.VehicleProfitLoss(r.Context(), tenantID(r.Context()), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *reportHandler) exportMonthly(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="profit-loss-monthly.xlsx"`)
	if err := h.reportSvc.ExportMonthlyXLSX(r.Context(), w, tenantID(r.Context()), from, to); err != nil {
		http.Error(w, "Failed to write file", http.StatusInternalServerError)
	}
}

func (h *reportHandler) exportByVehicle(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="profit-loss-vehicles.xlsx"`)
	if err := h.reportSvc.ExportVehicleXLSX(r.Context(), w, tenantID(r.Context()), from, to); err != nil {
		http.Error(w, "Failed to write file", http.StatusInternalServerError)
	}
}
