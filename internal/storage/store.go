// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
)

// Store defines the interface for all persistence operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL) without
// changing the service layer, and keeps exactly one balance computation
// shared by all of them: every backend implements the same ledger.Reader
// queries and hands raw rows to the same engine.
//
// Unknown identifiers are reported via ledger.ErrNotFound (wrapped), so
// callers can errors.Is across backends.
type Store interface {
	ledger.Reader

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)
	UpdateGroupMembers(ctx context.Context, groupID string, members []string) error
	DeleteGroup(ctx context.Context, groupID string) error

	// Expenses
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	// DeleteExpense soft-deletes: the row stays but every ledger read
	// excludes it from then on.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Transfers
	CreateTransfer(ctx context.Context, transfer *models.Transfer) error
	GetTransfer(ctx context.Context, transferID string) (*models.Transfer, error)
	DeleteTransfer(ctx context.Context, transferID string) error

	// Close releases any resources held by the store.
	Close() error
}
