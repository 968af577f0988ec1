package http

import (
	"net/http"

	"github.com/MKhiriev/go-repa/internal/utils"
	"github.com/MKhiriev/go-repa/models"
)

func (h *Handler) createTraining(w http.ResponseWriter, r *http.Request) {
	var training models.Training
	if err := decodeJSON(r, &training); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.services.TrainingService.CreateTraining(r.Context(), principalFrom(r), training)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getTraining(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	training, err := h.services.TrainingService.GetTraining(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, training, http.StatusOK)
}

func (h *Handler) listTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.services.TrainingService.ListTrainings(r.Context(), principalFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, trainings, http.StatusOK)
}

func (h *Handler) updateTraining(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var training models.Training
	if err = decodeJSON(r, &training); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.services.TrainingService.UpdateTraining(r.Context(), principalFrom(r), id, training)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTraining(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.TrainingService.DeleteTraining(r.Context(), principalFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
