package cerr

import (
	"errors"
	"fmt"

	"github.com/kazz187/raketaskregistrar/pkg/storage"
)

func WrapStorageReadError(target string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return NewError(NotFound, fmt.Sprintf("%s not found", target), err)
	}
	return NewError(Internal, fmt.Sprintf("failed to read %s", target), err)
}

func WrapStoragePathError(path string, err error) error {
	if errors.Is(err, storage.ErrOutsideBase) {
		return NewError(InvalidArgument, fmt.Sprintf("%s is outside the project directory", path), err)
	}
	return NewError(Internal, fmt.Sprintf("failed to resolve %s", path), err)
}

func WrapStorageWriteError(target string, err error) error {
	return NewError(Internal, fmt.Sprintf("failed to write %s", target), err)
}

func WrapStorageListError(target string, err error) error {
	return NewError(Internal, fmt.Sprintf("failed to list %s", target), err)
}
