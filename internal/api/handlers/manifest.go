package handlers

import (
	"bytes"
	"net/http"

	"photo-manifest/internal/api/utils"
	"photo-manifest/internal/files"
	"photo-manifest/internal/logger"
	"photo-manifest/internal/manifest"
)

// NewManifestHandler scans the folders on every request. Soft failures (no
// folders, no images) are still 200 responses with success=false.
func NewManifestHandler(store files.Store, opts manifest.Options, base BaseURLResolver, log logger.LoggerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseURL := base.Resolve(r)

		res, err := manifest.Build(r.Context(), store, opts, baseURL)
		if err != nil {
			log.Error("manifest scan failed", err, "path", r.URL.Path)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to scan photo folders", "SCAN_FAILED", nil)
			return
		}
		if !res.Success() {
			log.Warn("manifest empty", "outcome", res.Outcome.String(), "folders", res.Presence.Found())
		} else {
			log.Debug("manifest built", "photos", res.Count())
		}

		var buf bytes.Buffer
		if err := manifest.Encode(&buf, res); err != nil {
			log.Error("manifest encode failed", err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to encode manifest", "ENCODE_FAILED", nil)
			return
		}
		utils.WriteRaw(w, http.StatusOK, buf.Bytes())
	}
}
