package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-repa/internal/service"
	"github.com/MKhiriev/go-repa/internal/utils"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// int64Param parses a positive numeric path parameter.
func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidID
	}
	return id, nil
}

// userIDParam returns a UUID path parameter.
func userIDParam(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if !utils.IsUUID(id) {
		return "", service.ErrInvalidID
	}
	return id, nil
}

// pageParams reads limit and offset from the query string.
func pageParams(r *http.Request) (limit, offset uint64, err error) {
	limit = defaultPageLimit
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.ParseUint(v, 10, 64); err != nil || limit == 0 {
			return 0, 0, fmt.Errorf("%w: limit", ErrInvalidQuery)
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.ParseUint(v, 10, 64); err != nil {
			return 0, 0, fmt.Errorf("%w: offset", ErrInvalidQuery)
		}
	}

	return min(limit, maxPageLimit), offset, nil
}
