package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrVehicleNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrContractNotFound),
		errors.Is(err, service.ErrInvoiceNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrMaintenanceNotFound),
		errors.Is(err, service.ErrImageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrVehicleNotAvailable),
		errors.Is(err, service.ErrVehicleInUse),
		errors.Is(err, service.ErrClientHasContracts),
		errors.Is(err, service.ErrContractNotActive),
		errors.Is(err, service.ErrContractNotReturned),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrOdometerRegression),
		errors.Is(err, service.ErrBadContentType),
		errors.Is(err, service.ErrUploadNotFound):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeJSON(w, status, errorBody{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return false
	}
	return true
}
