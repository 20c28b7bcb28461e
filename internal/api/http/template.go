package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type templateHandler struct {
	templateSvc service.TemplateService
}

func (h *templateHandler) add(w http.ResponseWriter, r *http.Request) {
	var t domain.WhatsAppTemplate
	if !decode(w, r, &t) {
		return
	}
	t.TenantID = tenantID(r.Context())
	if err := h.templateSvc.AddTemplate(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *templateHandler) update(w http.ResponseWriter, r *http.Request) {
	var t domain.WhatsAppTemplate
	if !decode(w, r, &t) {
		return
	}
	t.TenantID = tenantID(r.Context())
	if err := h.templateSvc.UpdateTemplate(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *templateHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.templateSvc.DeleteTemplate(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *templateHandler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateSvc.ListTemplates(r.Context(), tenantID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

type previewRequest struct {
	ID     int32             `json:"id"`
	Values map[string]string `json:"values"`
}

type previewResponse struct {
	Rendered string `json:"rendered"`
}

func (h *templateHandler) preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decode(w, r, &req) {
		return
	}
	rendered, err := h.templateSvc.Preview(r.Context(), tenantID(r.Context()), req.ID, req.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Rendered: rendered})
}

type sendTemplateRequest struct {
	ClientID     int32             `json:"client_id"`
	TemplateName string            `json:"template_name"`
	Values       map[string]string `json:"values"`
}

func (h *templateHandler) send(w http.ResponseWriter, r *http.Request) {
	var req sendTemplateRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.templateSvc.SendToClient(r.Context(), tenantID(r.Context()), req.ClientID, req.TemplateName, req.Values); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
