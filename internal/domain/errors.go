package domain

import "fmt"

// Error types for consistent error handling across the API.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrConflict indicates a resource already exists (e.g. duplicate
// account number).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrUnbalanced indicates a manual journal whose debits and credits
// do not match.
type ErrUnbalanced struct {
	TotalDebit  string
	TotalCredit string
}

func (e *ErrUnbalanced) Error() string {
	return fmt.Sprintf("journal out of balance: debits=%s credits=%s", e.TotalDebit, e.TotalCredit)
}

// ErrReferenced indicates a registry record that cannot be deleted
// because documents still point at it.
type ErrReferenced struct {
	Resource string
	ID       string
}

func (e *ErrReferenced) Error() string {
	return fmt.Sprintf("%s %s is referenced by existing documents", e.Resource, e.ID)
}

// ErrStore indicates a failure in the collection store backend.
type ErrStore struct {
	Backend string
	Err     error
}

func (e *ErrStore) Error() string {
	return fmt.Sprintf("store error [%s]: %v", e.Backend, e.Err)
}

func (e *ErrStore) Unwrap() error {
	return e.Err
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}
