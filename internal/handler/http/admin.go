package http

import (
	"net/http"

	"github.com/MKhiriev/go-repa/internal/service"
	"github.com/MKhiriev/go-repa/internal/utils"
	"github.com/MKhiriev/go-repa/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.AdminService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AdminService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ProfileUpdate
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AdminService.UpdateUser(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AdminService.SetActive(r.Context(), id, false)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) setUserActive(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ActiveRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.IsActive == nil {
		writeError(w, r, &service.Error{Kind: service.ErrValidation, Detail: "is_active is required"})
		return
	}

	user, err := h.services.AdminService.SetActive(r.Context(), id, *req.IsActive)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) setUserRoles(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.RolesRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AdminService.SetRoles(r.Context(), id, req.Roles)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) listAllTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.services.AdminService.ListAllTrainings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, trainings, http.StatusOK)
}
