package http

import (
	"net/http"

	"github.com/MKhiriev/go-repa/internal/utils"
	"github.com/MKhiriev/go-repa/models"
)

func (h *Handler) createPerson(w http.ResponseWriter, r *http.Request) {
	var person models.Person
	if err := decodeJSON(r, &person); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.services.PersonService.CreatePerson(r.Context(), person)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getPerson(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	person, err := h.services.PersonService.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, person, http.StatusOK)
}

func (h *Handler) updatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var person models.Person
	if err = decodeJSON(r, &person); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.services.PersonService.UpdatePerson(r.Context(), id, person)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PersonService.DeletePerson(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
