// Package models defines the core domain models for Tallyup.
//
// Stored models (owned and mutated by the surrounding application):
//   - User: registered account, identified by UUID
//   - Group: a named set of member user IDs
//   - Expense: a shared cost with one ExpenseShare row per participant
//   - Transfer: a recorded payment between two users
//
// Derived models (computed per request, never persisted):
//   - NetBalance: one signed balance per participant within a scope
//   - SimplifiedTransaction: a suggested settling payment
//
// Derived values are request-local: they are recomputed from the full record
// set on every call and must be discarded after the response is written. Any
// caching is the caller's responsibility and is invalidated by any write to
// an Expense or Transfer in the same scope.
package models
