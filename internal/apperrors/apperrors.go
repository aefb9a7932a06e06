package apperrors

import "errors"

// Sentinel errors shared by services and mapped to HTTP statuses in the
// handlers. Services wrap these with fmt.Errorf("%w: ...") so the message
// reaching the client stays specific while errors.Is keeps the mapping.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
