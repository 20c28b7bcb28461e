package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type notificationHandler struct {
	noteSvc service.NotificationService
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (h *notificationHandler) list(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !decode(w, r, &req) {
		return
	}
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), tenantID(r.Context()), req.Page, req.PageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, Total: total})
}

func (h *notificationHandler) markAsRead(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type settingsHandler struct {
	settingsSvc service.SettingsService
}

func (h *settingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.GetSettings(r.Context(), tenantID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *settingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var s domain.CompanySettings
	if !decode(w, r, &s) {
		return
	}
	s.TenantID = tenantID(r.Context())
	if err := h.settingsSvc.UpdateSettings(r.Context(), &s); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
