package cerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

func TestErrorMessage(t *testing.T) {
	err := NewError(NotFound, "rake file not found", nil)
	assert.Equal(t, "[not_found] rake file not found", err.Error())

	wrapped := NewError(Internal, "failed to write", errors.New("disk full"))
	assert.Equal(t, "[internal] failed to write: disk full", wrapped.Error())
	assert.NotEmpty(t, wrapped.Stack)
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("register: %w", NewError(FailedPrecondition, "bad migration", nil))
	assert.True(t, IsCode(err, FailedPrecondition))
	assert.False(t, IsCode(err, NotFound))
	assert.False(t, IsCode(errors.New("plain"), FailedPrecondition))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{OK, 0},
		{InvalidArgument, 2},
		{NotFound, 1},
		{FailedPrecondition, 1},
		{Internal, 1},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.ExitCode())
		})
	}
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, Extract(ctx, nil))

	orig := NewError(NotFound, "missing", nil)
	assert.Same(t, orig, Extract(ctx, fmt.Errorf("wrap: %w", orig)))

	unknown := Extract(ctx, errors.New("boom"))
	assert.Equal(t, Unknown, unknown.Code)
	assert.Equal(t, Canceled, Extract(ctx, context.Canceled).Code)
}

func TestWrapStorageReadError(t *testing.T) {
	err := WrapStorageReadError("rake file", fmt.Errorf("lib/tasks/x.rake: %w", storage.ErrNotFound))
	assert.True(t, IsCode(err, NotFound))

	err = WrapStorageReadError("rake file", errors.New("permission denied"))
	assert.True(t, IsCode(err, Internal))
}

func TestWrapStoragePathError(t *testing.T) {
	err := WrapStoragePathError("/tmp/deploy.rake", fmt.Errorf("/tmp/deploy.rake: %w", storage.ErrOutsideBase))
	assert.True(t, IsCode(err, InvalidArgument))
	assert.Equal(t, 2, CodeOf(err).ExitCode())

	err = WrapStoragePathError("x", errors.New("boom"))
	assert.True(t, IsCode(err, Internal))
}
