package handlers

import (
	"net/http"

	"github.com/devtrack/engine/internal/services"
)

type ProjectsHandler struct {
	svc services.ProjectService
}

func NewProjectsHandler(svc services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{svc: svc}
}

// List godoc
// @Summary  List the caller's projects with their work items
// @Tags     projects
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} types.APIResponse
// @Router   /projects [get]
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.svc.ListProjects(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items)
}

// Create godoc
// @Summary  Create a project
// @Tags     projects
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body types.ProjectRequest true "project"
// @Success  201 {object} types.APIResponse
// @Failure  400 {object} types.APIResponse
// @Router   /projects [post]
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in services.CreateProjectInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.svc.CreateProject(r.Context(), uid, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, p)
}

// Get godoc
// @Summary  Get a project
// @Tags     projects
// @Produce  json
// @Security BearerAuth
// @Param    projectId path string true "project id"
// @Success  200 {object} types.APIResponse
// @Failure  404 {object} types.APIResponse
// @Router   /projects/{projectId} [get]
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.svc.GetProject(r.Context(), id, uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// Update godoc
// @Summary      Update project fields
// @Description  Only the keys present in the body are compared and changed. The change is logged as an activity.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId path string               true "project id"
// @Param        body body types.ProjectRequest true "fields to change"
// @Success      200 {object} types.APIResponse
// @Failure      400 {object} types.APIResponse
// @Failure      404 {object} types.APIResponse
// @Router       /projects/{projectId} [put]
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	patch, err := services.ProjectFields.DecodeJSON(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.svc.UpdateProject(r.Context(), id, uid, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// Delete godoc
// @Summary  Delete a project with its work items and activity
// @Tags     projects
// @Security BearerAuth
// @Param    projectId path string true "project id"
// @Success  204
// @Failure  404 {object} types.APIResponse
// @Router   /projects/{projectId} [delete]
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteProject(r.Context(), id, uid); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activities godoc
// @Summary  Activity log of a project, newest first
// @Tags     activities
// @Produce  json
// @Security BearerAuth
// @Param    projectId path string true "project id"
// @Success  200 {object} types.APIResponse
// @Router   /projects/{projectId}/activities [get]
func (h *ProjectsHandler) Activities(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	acts, err := h.svc.ListProjectActivities(r.Context(), id, uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, acts)
}
