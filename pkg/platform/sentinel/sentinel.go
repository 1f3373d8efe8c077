package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors.
//
// These describe the state of a row, not the validity of a request:
// - ErrNotFound: no row matches the lookup key
// - ErrAlreadyUsed: a unique natural key is already taken
// - ErrMissingParent: the referenced parent row does not exist
// - ErrUnavailable: the backing service could not be reached
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyUsed   = errors.New("already used")
	ErrMissingParent = errors.New("missing parent")
	ErrUnavailable   = errors.New("unavailable")
)
