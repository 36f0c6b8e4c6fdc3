package handlers

import (
	"errors"
	"net/http"

	"photo-manifest/internal/api/utils"
	"photo-manifest/internal/files"
	"photo-manifest/internal/logger"
	"photo-manifest/internal/manifest"
	"photo-manifest/internal/photoinfo"
)

func NewPhotoInfoHandler(store files.Store, opts manifest.Options, log logger.LoggerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("filename")

		info, err := photoinfo.Read(r.Context(), store, opts, name)
		switch {
		case err == nil:
			utils.WriteJSON(w, http.StatusOK, info)
		case errors.Is(err, files.ErrInvalidPath):
			utils.WriteError(w, http.StatusBadRequest, "Invalid file name", "INVALID_FILE_NAME", nil)
		case errors.Is(err, photoinfo.ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "Photo not found", "PHOTO_NOT_FOUND", map[string]any{
				"filename": name,
			})
		default:
			log.Error("photo info failed", err, "filename", name)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to read photo", "PHOTO_READ_FAILED", nil)
		}
	}
}
