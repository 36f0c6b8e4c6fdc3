package handlers

import (
	"errors"
	"net/http"
	"time"

	"photo-manifest/internal/api/utils"
	"photo-manifest/internal/files"
	"photo-manifest/internal/logger"
	"photo-manifest/internal/manifest"
)

// NewImageHandler serves one folder's images so the URLs in the manifest
// resolve against this server.
func NewImageHandler(store files.Store, opts manifest.Options, folder string, log logger.LoggerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel, err := files.ResolveImagePath(opts, folder, r.PathValue("filename"))
		if err != nil {
			if errors.Is(err, files.ErrFolderNotAllowed) || errors.Is(err, files.ErrInvalidPath) {
				utils.WriteError(w, http.StatusBadRequest, "Invalid file path", "INVALID_FILE_PATH", nil)
				return
			}
			utils.WriteError(w, http.StatusInternalServerError, "Failed to resolve file path", "FILE_PATH_ERROR", nil)
			return
		}

		obj, err := store.Open(r.Context(), rel)
		if err != nil {
			if errors.Is(err, files.ErrNotFound) {
				utils.WriteError(w, http.StatusNotFound, "File not found", "FILE_NOT_FOUND", nil)
				return
			}
			log.Error("open image failed", err, "path", rel)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to open file", "FILE_OPEN_ERROR", nil)
			return
		}
		defer obj.Content.Close()

		http.ServeContent(w, r, obj.Name, obj.ModTime.Truncate(time.Second), obj.Content)
	}
}
