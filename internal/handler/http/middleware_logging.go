package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-repa/internal/logger"
)

const anonymous = "anonymous"

// requestInfo is filled by inner middleware so that the access log can
// report who made the request.
type requestInfo struct {
	userID string
}

type requestInfoCtxKey struct{}

func setRequestUser(ctx context.Context, userID string) {
	if info, ok := ctx.Value(requestInfoCtxKey{}).(*requestInfo); ok {
		info.userID = userID
	}
}

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		info := &requestInfo{userID: anonymous}
		r = r.WithContext(context.WithValue(r.Context(), requestInfoCtxKey{}, info))

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)
		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.metrics.ObserveRequest(method, route, status, duration)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", status).
			Dur("duration", duration).
			Int("size", lw.size).
			Str("user_id", info.userID).
			Send()
	})
}
