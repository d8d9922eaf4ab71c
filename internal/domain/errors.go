package domain

import "errors"

// Error taxonomy shared by the repository and service layers. Handlers map
// these onto HTTP status codes; everything else surfaces as an internal error.
var (
	ErrNotFound            = errors.New("record not found")
	ErrAlreadyProcessed    = errors.New("invitation already processed")
	ErrExpired             = errors.New("invitation has expired")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrValidation          = errors.New("invalid input")
	ErrTransactionConflict = errors.New("transaction conflict, retry the operation")
	ErrBatchCommit         = errors.New("batch commit failed")
)
