package handlers

import (
	"net/http"

	"photo-manifest/internal/api/dto"
	"photo-manifest/internal/api/utils"
	"photo-manifest/internal/files"
	"photo-manifest/internal/logger"
	"photo-manifest/internal/manifest"
)

func NewFoldersHandler(store files.Store, opts manifest.Options, log logger.LoggerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presence, err := manifest.CheckFolders(r.Context(), store, opts)
		if err != nil {
			log.Error("folder check failed", err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to check folders", "FOLDER_CHECK_FAILED", nil)
			return
		}

		reference, _ := manifest.ReferenceFolder(presence)
		utils.WriteJSON(w, http.StatusOK, dto.FoldersResponse{
			Folders:   presence,
			Found:     presence.Found(),
			Structure: presence.All(),
			Reference: reference,
		})
	}
}
