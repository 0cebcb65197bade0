package store

import (
	"errors"
	"fmt"
)

// ErrStorage is the kind of every error returned by Store.Save.
var ErrStorage = errors.New("storage failed")

// StorageError describes a failed filesystem operation.
type StorageError struct {
	// Op is the operation that failed: "mkdir", "create", "write" or "close".
	Op string

	// Path is the directory or file involved.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
