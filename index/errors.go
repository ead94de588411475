package index

import "errors"

var (
	// ErrNotFound indicates no inscription is recorded at the requested location.
	ErrNotFound = errors.New("index: location not found")

	// ErrUpdateFailed indicates the chain scan that brings the index up to date failed.
	ErrUpdateFailed = errors.New("index: update failed")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("index: required parameter is nil")

	// ErrCorruptEntry indicates a stored key or value could not be decoded.
	ErrCorruptEntry = errors.New("index: corrupt entry")
)
