package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/devtrack/engine/internal/api/types"
	appErr "github.com/devtrack/engine/pkg/errors"
)

type HealthHandler struct {
	ping func(context.Context) error
}

// NewHealthHandler takes the datastore ping used for readiness. A nil ping
// reports ready unconditionally.
func NewHealthHandler(ping func(context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, types.APIResponse{
				Success: false,
				Error:   &types.APIError{Code: string(appErr.CodeUnavailable), Message: "database unavailable"},
			})
			return
		}
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ready"})
}
