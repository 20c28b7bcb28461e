package http

import (
	"io"
	"net/http"
	"path/filepath"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
)

type imageHandler struct {
	imageSvc service.ImageService
}

type uploadURLRequest struct {
	VehicleID   *int32 `json:"vehicle_id,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type uploadURLResponse struct {
	Image     *domain.VehicleImage `json:"image"`
	UploadURL string               `json:"upload_url"`
}

func (h *imageHandler) getUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if !decode(w, r, &req) {
		return
	}
	img, uploadURL, err := h.imageSvc.GetUploadURL(r.Context(), tenantID(r.Context()), req.VehicleID, req.Filename, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadURLResponse{Image: img, UploadURL: uploadURL})
}

type confirmUploadRequest struct {
	ImageID  int32 `json:"image_id"`
	FileSize int64 `json:"file_size"`
}

func (h *imageHandler) confirmUpload(w http.ResponseWriter, r *http.Request) {
	var req confirmUploadRequest
	if !decode(w, r, &req) {
		return
	}
	img, err := h.imageSvc.ConfirmUpload(r.Context(), tenantID(r.Context()), req.ImageID, req.FileSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

type downloadURLResponse struct {
	DownloadURL string `json:"download_url"`
}

func (h *imageHandler) getDownloadURL(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	url, err := h.imageSvc.GetDownloadURL(r.Context(), tenantID(r.Context()), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, downloadURLResponse{DownloadURL: url})
}

func (h *imageHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.imageSvc.DeleteImage(r.Context(), tenantID(r.Context()), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *imageHandler) listByVehicle(w http.ResponseWriter, r *http.Request) {
	var req listByVehicleRequest
	if !decode(w, r, &req) {
		return
	}
	images, err := h.imageSvc.ListVehicleImages(r.Context(), tenantID(r.Context()), req.VehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// fileHandler serves the mock storage presigned URLs. Uploads are PUT to
// the URL issued by images.getUploadUrl; downloads stream the file back.
type fileHandler struct {
	store storage.Storage
}

func (h *fileHandler) upload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}
	if err := h.store.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

func (h *fileHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}
	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
