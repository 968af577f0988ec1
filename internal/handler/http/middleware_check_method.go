// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-repa/internal/utils"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// If the requested path is a registered route that does not handle the
// method, it answers 404 {"detail":"not found"} instead of chi's bare 405,
// hiding which methods exist. Only exact (non-parameterised) patterns are
// matched; everything else falls back to 405 {"detail":"method not allowed"}.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; !ok {
				utils.WriteError(w, "not found", http.StatusNotFound)
				return
			}
		}

		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
