package handlers

import (
	"net/http"

	"github.com/devtrack/engine/internal/services"
)

type ActivitiesHandler struct {
	svc services.ActivityService
}

func NewActivitiesHandler(svc services.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{svc: svc}
}

// List godoc
// @Summary  Activity across all of the caller's projects, newest first
// @Tags     activities
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} types.APIResponse
// @Router   /activities [get]
func (h *ActivitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	acts, err := h.svc.List(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, acts)
}

func (h *ActivitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.Get(r.Context(), id, uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, a)
}
