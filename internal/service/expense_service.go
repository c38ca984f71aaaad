package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/money"
	"github.com/tallyup/backend/internal/storage"
)

// ExpenseService manages expense records and their share rows.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense validates and persists an expense. The owed amounts must sum
// to the total within rounding tolerance; the engine depends on that
// invariant holding for every stored expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, expense *models.Expense) (*models.Expense, error) {
	slog.Info("CreateExpense request",
		"group_id", expense.GroupID,
		"total", expense.Total,
		"shares_count", len(expense.Shares),
	)

	if err := validateShares(expense); err != nil {
		return nil, err
	}

	if expense.GroupID != "" {
		group, err := s.store.GetGroup(ctx, expense.GroupID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(userID) {
			return nil, ErrForbidden
		}
		for _, share := range expense.Shares {
			if !group.HasMember(share.UserID) {
				return nil, fmt.Errorf("%w: %s is not a member of the group", ErrInvalidInput, share.UserID)
			}
		}
	} else {
		for _, share := range expense.Shares {
			if _, err := s.store.GetUserByID(ctx, share.UserID); err != nil {
				return nil, fmt.Errorf("failed to resolve participant %s: %w", share.UserID, err)
			}
		}
	}

	expense.CreatedBy = userID
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, err
	}

	slog.Info("Expense created", "expense_id", expense.ID)
	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListGroupExpenses retrieves the non-deleted expenses of a group.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, userID, groupID string) ([]*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrForbidden
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense soft-deletes an expense; every ledger read excludes it from
// then on, and any cached balances for the scope are stale.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.GroupID != "" {
		group, err := s.store.GetGroup(ctx, expense.GroupID)
		if err != nil {
			return err
		}
		if !group.HasMember(userID) {
			return ErrForbidden
		}
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}

func validateShares(expense *models.Expense) error {
	if expense.Total <= 0 {
		return fmt.Errorf("%w: total must be positive", ErrInvalidInput)
	}
	if len(expense.Shares) == 0 {
		return fmt.Errorf("%w: at least one share required", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(expense.Shares))
	var owedSum float64
	for _, share := range expense.Shares {
		if share.UserID == "" {
			return fmt.Errorf("%w: share missing user", ErrInvalidInput)
		}
		if seen[share.UserID] {
			return fmt.Errorf("%w: duplicate share for %s", ErrInvalidInput, share.UserID)
		}
		seen[share.UserID] = true
		if share.Paid < 0 || share.Owed < 0 {
			return fmt.Errorf("%w: negative amounts not allowed", ErrInvalidInput)
		}
		owedSum = money.Round2(owedSum + share.Owed)
	}

	if math.Abs(owedSum-expense.Total) > money.Epsilon {
		return fmt.Errorf("%w: owed amounts sum to %.2f, expense total is %.2f",
			ErrInvalidInput, owedSum, expense.Total)
	}

	return nil
}
