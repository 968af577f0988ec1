package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/service"
	"github.com/MKhiriev/go-repa/internal/utils"
)

const internalErrorDetail = "internal server error"

var errorStatusMap = map[error]int{
	service.ErrValidation:      http.StatusBadRequest,
	service.ErrConflict:        http.StatusBadRequest,
	service.ErrUnauthorized:    http.StatusUnauthorized,
	service.ErrForbidden:       http.StatusForbidden,
	service.ErrNotFound:        http.StatusNotFound,
	service.ErrTooManyAttempts: http.StatusTooManyRequests,

	ErrInvalidJSON:  http.StatusBadRequest,
	ErrInvalidQuery: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status and writes {"detail": ...}. Internal
// failures are logged and reported without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
		utils.WriteError(w, internalErrorDetail, status)
		return
	}

	detail := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		detail = se.Detail
	}
	logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request rejected")
	utils.WriteError(w, detail, status)
}
