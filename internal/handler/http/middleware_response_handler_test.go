// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_WriteHeader_CalledTwice_IgnoresSecond(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResponseWriter_Write_SetsImplicit200AndAccumulatesSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, _ = w.Write([]byte("hello"))
	_, _ = w.Write([]byte(", world"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 12, w.size)
	assert.Equal(t, "hello, world", rec.Body.String())
}

func TestResponseWriter_InitialState(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	assert.Zero(t, w.status)
	assert.Zero(t, w.size)
	assert.False(t, w.wroteHeader)
	assert.NotNil(t, w.Unwrap())
}
