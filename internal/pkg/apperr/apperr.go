package apperr

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes with errors.Is; everything else is treated as a transient
// store error and propagated unchanged.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
