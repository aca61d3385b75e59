package types

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{appErr.New(appErr.CodeNotFound, "project not found"), http.StatusNotFound},
		{appErr.New(appErr.CodeInvalid, "bad"), http.StatusBadRequest},
		{appErr.New(appErr.CodeAlreadyExists, "dup"), http.StatusConflict},
		{appErr.New(appErr.CodeUnauthorized, "who"), http.StatusUnauthorized},
		{fmt.Errorf("outer: %w", appErr.New(appErr.CodeNotFound, "x")), http.StatusNotFound},
		{appErr.Wrap(context.DeadlineExceeded, appErr.CodeInternal, "get project failed"), http.StatusGatewayTimeout},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestFromAppErrorHidesInternalCauses(t *testing.T) {
	e := FromAppError(appErr.Wrap(errors.New("pq: password authentication failed"), appErr.CodeInternal, "get project failed"))
	assert.Equal(t, "internal", e.Code)
	assert.Equal(t, "get project failed", e.Message)
	assert.Empty(t, e.Details)

	e = FromAppError(errors.New("raw driver error"))
	assert.Equal(t, "internal error", e.Message)

	e = FromAppError(appErr.New(appErr.CodeInvalid, "name must not be empty").WithMeta("field", "name"))
	assert.Equal(t, "name", e.Field)
}

func TestFromAppErrorReportsDeadline(t *testing.T) {
	e := FromAppError(appErr.Wrap(context.DeadlineExceeded, appErr.CodeInternal, "list features failed"))
	assert.Equal(t, "deadline_exceeded", e.Code)
	assert.Equal(t, "list features failed", e.Message)
}
