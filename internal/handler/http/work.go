package http

import (
	"net/http"

	"github.com/MKhiriev/go-repa/internal/utils"
	"github.com/MKhiriev/go-repa/models"
)

func (h *Handler) createWork(w http.ResponseWriter, r *http.Request) {
	var work models.Work
	if err := decodeJSON(r, &work); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.services.WorkService.CreateWork(r.Context(), principalFrom(r), work)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getWork(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	work, err := h.services.WorkService.GetWork(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, work, http.StatusOK)
}

func (h *Handler) listWorks(w http.ResponseWriter, r *http.Request) {
	works, err := h.services.WorkService.ListWorks(r.Context(), principalFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, works, http.StatusOK)
}

func (h *Handler) updateWork(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var work models.Work
	if err = decodeJSON(r, &work); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.services.WorkService.UpdateWork(r.Context(), principalFrom(r), id, work)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteWork(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.WorkService.DeleteWork(r.Context(), principalFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listWorkRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.services.WorkService.ListWorkRoles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, roles, http.StatusOK)
}

func (h *Handler) listWorkTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.services.WorkService.ListWorkTasks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}
