// Package service implements the application services on top of storage and
// the ledger engine. Authorization (who may see a group's ledger) lives
// here, before the engine is ever invoked; the engine itself never checks
// auth.
package service

import "errors"

var (
	// ErrInvalidInput marks validation failures. Wrapped with detail via
	// fmt.Errorf("%w: ...").
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden is returned when the acting user is not a member of
	// the scope they are trying to read or write.
	ErrForbidden = errors.New("not a member of this group")
)
