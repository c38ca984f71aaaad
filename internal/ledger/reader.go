// Package ledger is the balance ledger and debt-simplification engine.
//
// The engine is pure computation: a Reader resolves a scope (a user pair or a
// group's member set) to its raw expense-share and transfer rows,
// ComputeNetBalances folds those rows into one signed balance per
// participant, and Simplify turns the balances into a small set of suggested
// settling payments. Given identical inputs the engine produces identical
// outputs; it holds no state between calls and may be invoked concurrently
// for any number of scopes without coordination.
package ledger

import (
	"context"

	"github.com/tallyup/backend/internal/models"
)

// Scope is the closed set of participants and the raw rows relevant to them.
// Balances from different scopes are never compared or mixed.
type Scope struct {
	// Participants is the bounding member set, sorted for determinism.
	// Shares and transfers referencing users outside this set are skipped
	// during aggregation.
	Participants []string

	// Shares are the relevant expense-share rows, from non-deleted
	// expenses only. A group scope may include stale rows belonging to
	// removed members.
	Shares []models.ExpenseShare

	// Transfers are the relevant payment rows.
	Transfers []models.Transfer
}

// Reader resolves a scope identifier to its raw ledger rows. There is one
// implementation per storage backend; the computation on top of it exists
// exactly once.
//
// Reads are all-or-nothing per scope: if the context is cancelled mid-read,
// implementations return the error and no partial Scope.
type Reader interface {
	// PairLedger resolves the scope of two users: shares from non-deleted
	// expenses on which BOTH users hold a share row, and transfers
	// between the two in either direction. Returns ErrNotFound if either
	// user does not exist.
	PairLedger(ctx context.Context, userA, userB string) (Scope, error)

	// GroupLedger resolves a group's scope: the current member list, all
	// shares on non-deleted expenses tagged with the group, and all
	// transfers tagged with the group. Returns ErrNotFound if the group
	// does not exist.
	GroupLedger(ctx context.Context, groupID string) (Scope, error)
}
