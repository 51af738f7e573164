// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrInvalidRequest indicates a request that could not be decoded.
	ErrInvalidRequest = errors.New("invalid request")
)
