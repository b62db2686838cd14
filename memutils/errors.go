package memutils

import "github.com/pkg/errors"

var (
	// ErrHeapTooSmall is returned when a heap is created with fewer words than a single free segment needs
	ErrHeapTooSmall error = errors.New("heap must hold at least one free segment")
	// ErrNilStrategy is returned when a heap is created without an allocation strategy
	ErrNilStrategy error = errors.New("allocation strategy must not be nil")
	// ErrInvalidRequestSize is returned from Request when the requested word count is out of range
	ErrInvalidRequestSize error = errors.New("requested word count is out of range")
	// ErrInvalidHandle is returned from Release when the handle does not belong to a live allocation
	ErrInvalidHandle error = errors.New("handle does not refer to a live allocation")
	// ErrNotReserved is returned from Release when the segment behind a handle is not reserved
	ErrNotReserved error = errors.New("attempted to release non-reserved memory")
	// ErrUnknownStrategy is returned when a strategy name or kind is not registered
	ErrUnknownStrategy error = errors.New("unknown allocation strategy")
)
