package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
)

// Services groups everything the API surface depends on.
type Services struct {
	Auth         service.AuthService
	Fleet        service.FleetService
	Client       service.ClientService
	Contract     service.ContractService
	Invoice      service.InvoiceService
	Maintenance  service.MaintenanceService
	Report       service.ReportService
	Template     service.TemplateService
	Notification service.NotificationService
	Settings     service.SettingsService
	Image        service.ImageService
}

// NewRouter wires every RPC procedure onto a gorilla mux. Procedures are
// invoked as POST /rpc/<namespace>.<procedure> with a JSON body; everything
// except the auth namespace requires a Bearer access token.
func NewRouter(svcs Services, tokenMgr security.TokenManager, store storage.Storage) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	auth := &authHandler{authSvc: svcs.Auth}
	router.HandleFunc("/rpc/auth.signup", auth.signup).Methods(http.MethodPost)
	router.HandleFunc("/rpc/auth.login", auth.login).Methods(http.MethodPost)
	router.HandleFunc("/rpc/auth.refresh", auth.refresh).Methods(http.MethodPost)

	files := &fileHandler{store: store}
	router.HandleFunc("/files/upload/{token}", files.upload).Methods(http.MethodPut)
	router.HandleFunc("/files/download", files.download).Methods(http.MethodGet)

	rpc := router.PathPrefix("/rpc").Subrouter()
	rpc.Use(authMiddleware(tokenMgr))

	fleet := &fleetHandler{fleetSvc: svcs.Fleet}
	rpc.HandleFunc("/fleet.addVehicle", fleet.add).Methods(http.MethodPost)
	rpc.HandleFunc("/fleet.getVehicle", fleet.get).Methods(http.MethodPost)
	rpc.HandleFunc("/fleet.updateVehicle", fleet.update).Methods(http.MethodPost)
	rpc.HandleFunc("/fleet.retireVehicle", fleet.retire).Methods(http.MethodPost)
	rpc.HandleFunc("/fleet.deleteVehicle", fleet.delete).Methods(http.MethodPost)
	rpc.HandleFunc("/fleet.listVehicles", fleet.list).Methods(http.MethodPost)

	clients := &clientHandler{clientSvc: svcs.Client}
	rpc.HandleFunc("/clients.add", clients.add).Methods(http.MethodPost)
	rpc.HandleFunc("/clients.get", clients.get).Methods(http.MethodPost)
	rpc.HandleFunc("/clients.update", clients.update).Methods(http.MethodPost)
	rpc.HandleFunc("/clients.delete", clients.delete).Methods(http.MethodPost)
	rpc.HandleFunc("/clients.list", clients.list).Methods(http.MethodPost)

	contracts := &contractHandler{contractSvc: svcs.Contract}
	rpc.HandleFunc("/contracts.create", contracts.create).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.get", contracts.get).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.list", contracts.list).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.markAsReturned", contracts.markAsReturned).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.amendDates", contracts.amendDates).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.amendVehicle", contracts.amendVehicle).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.amendRate", contracts.amendRate).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.delete", contracts.delete).Methods(http.MethodPost)
	rpc.HandleFunc("/contracts.addDamageMark", contracts.addDamageMark).Methods(http.MethodPost)

	invoices := &invoiceHandler{invoiceSvc: svcs.Invoice}
	rpc.HandleFunc("/invoices.generate", invoices.generate).Methods(http.MethodPost)
	rpc.HandleFunc("/invoices.get", invoices.get).Methods(http.MethodPost)
	rpc.HandleFunc("/invoices.markAsPaid", invoices.markAsPaid).Methods(http.MethodPost)
	rpc.HandleFunc("/invoices.cancel", invoices.cancel).Methods(http.MethodPost)
	rpc.HandleFunc("/invoices.list", invoices.list).Methods(http.MethodPost)

	maint := &maintenanceHandler{maintSvc: svcs.Maintenance}
	rpc.HandleFunc("/maintenance.scheduleTask", maint.schedule).Methods(http.MethodPost)
	rpc.HandleFunc("/maintenance.getTask", maint.get).Methods(http.MethodPost)
	rpc.HandleFunc("/maintenance.updateTask", maint.update).Methods(http.MethodPost)
	rpc.HandleFunc("/maintenance.completeTask", maint.complete).Methods(http.MethodPost)
	rpc.HandleFunc("/maintenance.deleteTask", maint.delete).Methods(http.MethodPost)
	rpc.HandleFunc("/maintenance.listByVehicle", maint.listByVehicle).Methods(http.MethodPost)
	rpc.HandleFunc("/maintenance.generateSchedule", maint.suggestSchedule).Methods(http.MethodPost)

	reports := &reportHandler{reportSvc: svcs.Report}
	rpc.HandleFunc("/profitLoss.monthly", reports.monthly).Methods(http.MethodPost)
	rpc.HandleFunc("/profitLoss.byVehicle", reports.byVehicle).Methods(http.MethodPost)
	rpc.HandleFunc("/profitLoss.exportMonthly", reports.exportMonthly).Methods(http.MethodPost)
	rpc.HandleFunc("/profitLoss.exportByVehicle", reports.exportByVehicle).Methods(http.MethodPost)

	templates := &templateHandler{templateSvc: svcs.Template}
	rpc.HandleFunc("/whatsappTemplates.add", templates.add).Methods(http.MethodPost)
	rpc.HandleFunc("/whatsappTemplates.update", templates.update).Methods(http.MethodPost)
	rpc.HandleFunc("/whatsappTemplates.delete", templates.delete).Methods(http.MethodPost)
	rpc.HandleFunc("/whatsappTemplates.list", templates.list).Methods(http.MethodPost)
	rpc.HandleFunc("/whatsappTemplates.preview", templates.preview).Methods(http.MethodPost)
	rpc.HandleFunc("/whatsappTemplates.send", templates.send).Methods(http.MethodPost)

	notes := &notificationHandler{noteSvc: svcs.Notification}
	rpc.HandleFunc("/notifications.list", notes.list).Methods(http.MethodPost)
	rpc.HandleFunc("/notifications.markAsRead", notes.markAsRead).Methods(http.MethodPost)

	settings := &settingsHandler{settingsSvc: svcs.Settings}
	rpc.HandleFunc("/settings.get", settings.get).Methods(http.MethodPost)
	rpc.HandleFunc("/settings.update", settings.update).Methods(http.MethodPost)

	images := &imageHandler{imageSvc: svcs.Image}
	rpc.HandleFunc("/images.getUploadUrl", images.getUploadURL).Methods(http.MethodPost)
	rpc.HandleFunc("/images.confirmUpload", images.confirmUpload).Methods(http.MethodPost)
	rpc.HandleFunc("/images.getDownloadUrl", images.getDownloadURL).Methods(http.MethodPost)
	rpc.HandleFunc("/images.delete", images.delete).Methods(http.MethodPost)
	rpc.HandleFunc("/images.listByVehicle", images.listByVehicle).Methods(http.MethodPost)

	return router
}
