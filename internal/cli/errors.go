package cli

import (
	"errors"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// exitError pins an error to a process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps err to a process exit code. Unclassified errors, such as
// cobra's flag and argument errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}

// userErrors are the storage and engine sentinels caused by bad input.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrBedNotFound,
	types.ErrCropNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrInvalidName,
	types.ErrInvalidBed,
	types.ErrInvalidMethod,
	types.ErrInvalidWindow,
	types.ErrInvalidDate,
	types.ErrInvalidStrategy,
	types.ErrConflict,
}

// storeError classifies an error returned by the backend: bad input is a
// user error, anything else (I/O, SQL) is a system error.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}
