package dto

import "photo-manifest/internal/manifest"

type FoldersResponse struct {
	Folders   manifest.Presence `json:"folders"`
	Found     []string          `json:"found"`
	Structure bool              `json:"structure"`
	Reference string            `json:"reference,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
