package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type clientHandler struct {
	clientSvc service.ClientService
}

func (h *clientHandler) add(w http.ResponseWriter, r *http.Request) {
	var c domain.Client
	if !decode(w, r, &c) {
		return
	}
	c.TenantID = tenantID(r.Context())
	if err := h.clientSvc.AddClient(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *clientHandler) get(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.clientSvc.GetClient(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *clientHandler) update(w http.ResponseWriter, r *http.Request) {
	var c domain.Client
	if !decode(w, r, &c) {
		return
	}
	c.TenantID = tenantID(r.Context())
	if err := h.clientSvc.UpdateClient(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *clientHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.clientSvc.DeleteClient(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type clientListResponse struct {
	Clients []domain.Client `json:"clients"`
	Total   int32           `json:"total"`
}

func (h *clientHandler) list(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !decode(w, r, &req) {
		return
	}
	clients, total, err := h.clientSvc.ListClients(r.Context(), tenantID(r.Context()), req.Search, req.Page, req.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientListResponse{Clients: clients, Total: total})
}
