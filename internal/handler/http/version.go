package http

import (
	"net/http"

	"github.com/MKhiriev/go-repa/internal/utils"
)

// getServerVersion answers with the plain version string.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, h.services.AppInfoService.GetAppVersion(r.Context()))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	utils.WriteText(w, "ok")
}
