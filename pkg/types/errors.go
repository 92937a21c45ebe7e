package types

import "errors"

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Lookup and storage errors.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrBedNotFound     = errors.New("bed not found")
	ErrCropNotFound    = errors.New("crop not found")
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrInvalidData     = errors.New("invalid entity data")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidBed      = errors.New("invalid bed dimensions")
	ErrInvalidMethod   = errors.New("unknown planning method")
	ErrInvalidWindow   = errors.New("occupancy start must be before occupancy end")
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrInvalidStrategy = errors.New("unknown quantity strategy")
)

// ErrConflict is returned by placement when the candidate overlaps an
// existing occupant in both space and time and carries no override.
var ErrConflict = errors.New("planting conflicts with existing occupants")
