package handlers

import (
	"encoding/json"
	"net/http"

	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"
)

// maxUploadSize caps product and banner images at 10 MB
const maxUploadSize = 10 << 20

// MediaHandler uploads catalog imagery to object storage
type MediaHandler struct {
	Media *services.MediaService
}

func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{Media: media}
}

// Upload handles POST /api/admin/media, multipart field "file"
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.Media.Enabled() {
		utils.Error(w, http.StatusServiceUnavailable, "Media storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "File too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	url, err := h.Media.Upload(r.Context(), header.Filename, file)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Delete handles DELETE /api/admin/media
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.Media.Enabled() {
		utils.Error(w, http.StatusServiceUnavailable, "Media storage is not configured")
		return
	}

	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Media.Delete(r.Context(), req.URL); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Media deleted"})
}
