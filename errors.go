package geosearch

import (
	"errors"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidModel is returned for a nil model or a model without an id.
	ErrInvalidModel = errors.New("invalid model")

	// ErrNotFound is returned when a model id is not indexed.
	ErrNotFound = errors.New("not found")
)
