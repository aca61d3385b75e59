package handlers

import (
	"net/http"

	"github.com/devtrack/engine/internal/api/types"
	"github.com/devtrack/engine/internal/services"
	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WorkItemsHandler serves one of the features, bugs or improvements collections.
type WorkItemsHandler[T any] struct {
	svc      services.WorkItemService[T]
	validate Validator
}

func NewWorkItemsHandler[T any](svc services.WorkItemService[T], v Validator) *WorkItemsHandler[T] {
	return &WorkItemsHandler[T]{svc: svc, validate: v}
}

// List returns every item the caller can see, or one project's items when
// ?projectId= is given.
func (h *WorkItemsHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var projectID *uuid.UUID
	if q := r.URL.Query().Get("projectId"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "invalid projectId").WithMeta("field", "projectId"))
			return
		}
		projectID = &id
	}
	h.list(w, r, uid, projectID)
}

func (h *WorkItemsHandler[T]) ListByProject(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	projectID, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.list(w, r, uid, &projectID)
}

func (h *WorkItemsHandler[T]) list(w http.ResponseWriter, r *http.Request, uid uuid.UUID, projectID *uuid.UUID) {
	items, err := h.svc.List(r.Context(), uid, projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items)
}

// Create takes the project from the path when mounted under
// /projects/{projectId}, otherwise from the body.
func (h *WorkItemsHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.WorkItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(h.validate, req); err != nil {
		writeError(w, r, err)
		return
	}

	in := &services.CreateWorkItemInput{
		Description: req.Description,
		Status:      req.Status,
		Rank:        req.Rank,
		Tags:        req.Tags,
	}
	switch {
	case chi.URLParam(r, "projectId") != "":
		if in.ProjectID, err = pathID(r, "projectId"); err != nil {
			writeError(w, r, err)
			return
		}
	case req.ProjectID != "":
		in.ProjectID = uuid.MustParse(req.ProjectID)
	default:
		writeError(w, r, appErr.New(appErr.CodeInvalid, "projectId is required").WithMeta("field", "projectId"))
		return
	}

	item, err := h.svc.Create(r.Context(), uid, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, item)
}

func (h *WorkItemsHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
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
	item, err := h.svc.Get(r.Context(), id, uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

// Update compares only the keys present in the body.
func (h *WorkItemsHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
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
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	patch, err := services.WorkItemFields.DecodeJSON(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.svc.Update(r.Context(), id, uid, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *WorkItemsHandler[T]) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	var req types.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(h.validate, req); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.svc.UpdateStatus(r.Context(), id, uid, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *WorkItemsHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.Delete(r.Context(), id, uid); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
