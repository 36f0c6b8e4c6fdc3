package handlers

import (
	"context"
	"net/http"
	"time"

	"photo-manifest/internal/api/dto"
	"photo-manifest/internal/api/utils"
	"photo-manifest/internal/files"
	"photo-manifest/internal/manifest"
)

func NewHealthHandler(store files.Store, opts manifest.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if _, err := manifest.CheckFolders(ctx, store, opts); err != nil {
			utils.WriteError(w, http.StatusServiceUnavailable, "Photo storage unavailable", "STORAGE_UNAVAILABLE", nil)
			return
		}

		utils.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
	}
}
