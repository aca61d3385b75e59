package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorFormatting(t *testing.T) {
	e := New(CodeNotFound, "project not found")
	assert.Equal(t, "not_found: project not found", e.Error())

	w := Wrap(errors.New("disk full"), CodeInternal, "create entity failed")
	assert.Equal(t, "internal: create entity failed: disk full", w.Error())

	var nilErr *AppError
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestCodeLookupThroughWrapping(t *testing.T) {
	base := New(CodeInvalid, "status is not allowed")
	wrapped := fmt.Errorf("update feature: %w", base)

	assert.True(t, IsCode(wrapped, CodeInvalid))
	assert.False(t, IsCode(wrapped, CodeNotFound))
	assert.Equal(t, CodeInvalid, CodeOf(wrapped))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
}

func TestWrapNilKeepsCode(t *testing.T) {
	e := Wrap(nil, CodeAlreadyExists, "email already exists")
	assert.Nil(t, e.Err)
	assert.Equal(t, CodeAlreadyExists, e.Code)
}

func TestExpiredContextReportsDeadline(t *testing.T) {
	err := Wrap(fmt.Errorf("query: %w", context.DeadlineExceeded), CodeInternal, "list projects failed")
	assert.Equal(t, CodeDeadline, CodeOf(err))
	assert.True(t, IsCode(err, CodeDeadline))

	assert.Equal(t, CodeInternal, CodeOf(Wrap(errors.New("disk full"), CodeInternal, "append activity failed")))
	assert.Equal(t, CodeNotFound, CodeOf(Wrap(context.DeadlineExceeded, CodeNotFound, "x")))
}

func TestWithMeta(t *testing.T) {
	e := New(CodeNotFound, "feature not found").WithMeta("id", 7)
	assert.Equal(t, 7, e.Meta["id"])
	assert.True(t, errors.Is(Wrap(e, CodeInternal, "outer"), e))
}
