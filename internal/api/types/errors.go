package types

import (
	"errors"
	"net/http"

	appErr "github.com/devtrack/engine/pkg/errors"
)

var statusByCode = map[appErr.Code]int{
	appErr.CodeInvalid:       http.StatusBadRequest,
	appErr.CodeNotFound:      http.StatusNotFound,
	appErr.CodeAlreadyExists: http.StatusConflict,
	appErr.CodeUnauthorized:  http.StatusUnauthorized,
	appErr.CodeUnavailable:   http.StatusServiceUnavailable,
	appErr.CodeDeadline:      http.StatusGatewayTimeout,
	appErr.CodeInternal:      http.StatusInternalServerError,
}

// HTTPStatus maps an error's code to a response status. Errors without a
// code are internal.
func HTTPStatus(err error) int {
	if s, ok := statusByCode[appErr.CodeOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// FromAppError renders err for clients. Internal causes stay out of the body.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if !errors.As(err, &e) {
		return &APIError{Code: string(appErr.CodeInternal), Message: "internal error"}
	}
	out := &APIError{Code: string(appErr.CodeOf(err)), Message: e.Message}
	if field, ok := e.Meta["field"].(string); ok {
		out.Field = field
	}
	if e.Code == appErr.CodeInvalid && e.Err != nil {
		out.Details = e.Err.Error()
	}
	return out
}
