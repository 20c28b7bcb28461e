package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type contractHandler struct {
	contractSvc service.ContractService
}

const dateLayout = "2006-01-02"

func parseDate(w http.ResponseWriter, value, field string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: field + " must be a YYYY-MM-DD date"})
		return time.Time{}, false
	}
	return t, true
}

type createContractRequest struct {
	VehicleID          int32               `json:"vehicle_id"`
	ClientID           int32               `json:"client_id"`
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	Discount           decimal.Decimal     `json:"discount"`
	InsurancePackage   string              `json:"insurance_package"`
	DailyInsuranceRate decimal.Decimal     `json:"daily_insurance_rate"`
	KmLimit            int32               `json:"km_limit"`
	OverLimitKmRate    decimal.Decimal     `json:"over_limit_km_rate"`
	LateFeePercentage  decimal.Decimal     `json:"late_fee_percentage"`
	FuelChargeRate     decimal.Decimal     `json:"fuel_charge_rate"`
	FuelPolicy         string              `json:"fuel_policy"`
	DepositAmount      decimal.Decimal     `json:"deposit_amount"`
	Notes              string              `json:"notes"`
	DamageMarks        []domain.DamageMark `json:"damage_marks"`
}

func (h *contractHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if !decode(w, r, &req) {
		return
	}
	start, ok := parseDate(w, req.StartDate, "start_date")
	if !ok {
		return
	}
	end, ok := parseDate(w, req.EndDate, "end_date")
	if !ok {
		return
	}

	c := &domain.RentalContract{
		TenantID:           tenantID(r.Context()),
		VehicleID:          req.VehicleID,
		ClientID:           req.ClientID,
		StartDate:          start,
		EndDate:            end,
		Discount:           req.Discount,
		InsurancePackage:   req.InsurancePackage,
		DailyInsuranceRate: req.DailyInsuranceRate,
		KmLimit:            req.KmLimit,
		OverLimitKmRate:    req.OverLimitKmRate,
		LateFeePercentage:  req.LateFeePercentage,
		FuelChargeRate:     req.FuelChargeRate,
		FuelPolicy:         domain.FuelPolicy(req.FuelPolicy),
		DepositAmount:      req.DepositAmount,
		Notes:              req.Notes,
	}
	created, err := h.contractSvc.CreateContract(r.Context(), c, req.DamageMarks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type contractResponse struct {
	Contract    *domain.RentalContract     `json:"contract"`
	DamageMarks []domain.DamageMark        `json:"damage_marks,omitempty"`
	Amendments  []domain.ContractAmendment `json:"amendments,omitempty"`
}

func (h *contractHandler) get(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	c, marks, amendments, err := h.contractSvc.GetContract(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contractResponse{Contract: c, DamageMarks: marks, Amendments: amendments})
}

type contractListResponse struct {
	Contracts []domain.RentalContract `json:"contracts"`
	Total     int32                   `json:"total"`
}

func (h *contractHandler) list(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !decode(w, r, &req) {
		return
	}
	contracts, total, err := h.contractSvc.ListContracts(r.Context(), tenantID(r.Context()), req.Status, req.Page, req.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contractListResponse{Contracts: contracts, Total: total})
}

type markAsReturnedRequest struct {
	ID            int32  `json:"id"`
	ReturnedAt    string `json:"returned_at,omitempty"` // YYYY-MM-DD, defaults to today
	OdometerKm    int32  `json:"odometer_km"`
	FuelLevel     int32  `json:"fuel_level"`
	DepositStatus string `json:"deposit_status,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type returnResponse struct {
	Contract *domain.RentalContract `json:"contract"`
	Invoice  *domain.Invoice        `json:"invoice"`
}

func (h *contractHandler) markAsReturned(w http.ResponseWriter, r *http.Request) {
	var req markAsReturnedRequest
	if !decode(w, r, &req) {
		return
	}
	ret := service.ReturnDetails{
		OdometerKm:    req.OdometerKm,
		FuelLevel:     req.FuelLevel,
		DepositStatus: domain.DepositStatus(req.DepositStatus),
		Notes:         req.Notes,
	}
	if req.ReturnedAt != "" {
		t, ok := parseDate(w, req.ReturnedAt, "returned_at")
		if !ok {
			return
		}
		ret.ReturnedAt = t
	}

	c, invoice, err := h.contractSvc.MarkAsReturned(r.Context(), tenantID(r.Context()), req.ID, ret)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, returnResponse{Contract: c, Invoice: invoice})
}

type amendDatesRequest struct {
	ID        int32  `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *contractHandler) amendDates(w http.ResponseWriter, r *http.Request) {
	var req amendDatesRequest
	if !decode(w, r, &req) {
		return
	}
	start, ok := parseDate(w, req.StartDate, "start_date")
	if !ok {
		return
	}
	end, ok := parseDate(w, req.EndDate, "end_date")
	if !ok {
		return
	}

	c, err := h.contractSvc.AmendDates(r.Context(), tenantID(r.Context()), req.ID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type amendVehicleRequest struct {
	ID           int32 `json:"id"`
	NewVehicleID int32 `json:"new_vehicle_id"`
}

func (h *contractHandler) amendVehicle(w http.ResponseWriter, r *http.Request) {
	var req amendVehicleRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.contractSvc.AmendVehicle(r.Context(), tenantID(r.Context()), req.ID, req.NewVehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type amendRateRequest struct {
	ID        int32           `json:"id"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	Discount  decimal.Decimal `json:"discount"`
}

func (h *contractHandler) amendRate(w http.ResponseWriter, r *http.Request) {
	var req amendRateRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.contractSvc.AmendRate(r.Context(), tenantID(r.Context()), req.ID, req.DailyRate, req.Discount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *contractHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.contractSvc.DeleteContract(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type addDamageMarkRequest struct {
	ContractID  int32   `json:"contract_id"`
	PositionX   float64 `json:"position_x"`
	PositionY   float64 `json:"position_y"`
	Description string  `json:"description"`
	PhotoKey    string  `json:"photo_key"`
}

func (h *contractHandler) addDamageMark(w http.ResponseWriter, r *http.Request) {
	var req addDamageMarkRequest
	if !decode(w, r, &req) {
		return
	}
	m := &domain.DamageMark{
		ContractID:  req.ContractID,
		PositionX:   req.PositionX,
		PositionY:   req.PositionY,
		Description: req.Description,
		PhotoKey:    req.PhotoKey,
	}
	if err := h.contractSvc.AddDamageMark(r.Context(), tenantID(r.Context()), m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
