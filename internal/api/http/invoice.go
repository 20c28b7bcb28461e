package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type invoiceHandler struct {
	invoiceSvc service.InvoiceService
}

type generateInvoiceRequest struct {
	ContractID int32 `json:"contract_id"`
}

type invoiceResponse struct {
	Invoice *domain.Invoice          `json:"invoice"`
	Items   []domain.InvoiceLineItem `json:"items"`
}

func (h *invoiceHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateInvoiceRequest
	if !decode(w, r, &req) {
		return
	}
	inv, items, err := h.invoiceSvc.GenerateForContract(r.Context(), tenantID(r.Context()), req.ContractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceResponse{Invoice: inv, Items: items})
}

func (h *invoiceHandler) get(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	inv, items, err := h.invoiceSvc.GetInvoice(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceResponse{Invoice: inv, Items: items})
}

func (h *invoiceHandler) markAsPaid(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	inv, err := h.invoiceSvc.MarkAsPaid(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *invoiceHandler) cancel(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	inv, err := h.invoiceSvc.Cancel(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type invoiceListResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
	Total    int32            `json:"total"`
}

func (h *invoiceHandler) list(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !decode(w, r, &req) {
		return
	}
	invoices, total, err := h.invoiceSvc.ListInvoices(r.Context(), tenantID(r.Context()), req.Status, req.Page, req.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceListResponse{Invoices: invoices, Total: total})
}
