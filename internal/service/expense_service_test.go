package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
)

func TestCreateExpense_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "bob")

	expenses := NewExpenseService(store)

	tests := []struct {
		name    string
		expense *models.Expense
	}{
		{
			name:    "zero total",
			expense: &models.Expense{Total: 0, Shares: []models.ExpenseShare{{UserID: "alice", Paid: 0, Owed: 0}}},
		},
		{
			name:    "no shares",
			expense: &models.Expense{Total: 10},
		},
		{
			name: "owed does not sum to total",
			expense: &models.Expense{Total: 100, Shares: []models.ExpenseShare{
				{UserID: "alice", Paid: 100, Owed: 40},
				{UserID: "bob", Paid: 0, Owed: 40},
			}},
		},
		{
			name: "duplicate participant",
			expense: &models.Expense{Total: 20, Shares: []models.ExpenseShare{
				{UserID: "alice", Paid: 20, Owed: 10},
				{UserID: "alice", Paid: 0, Owed: 10},
			}},
		},
		{
			name: "negative amount",
			expense: &models.Expense{Total: 10, Shares: []models.ExpenseShare{
				{UserID: "alice", Paid: 20, Owed: 20},
				{UserID: "bob", Paid: -10, Owed: -10},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expenses.CreateExpense(ctx, "alice", tt.expense)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateExpense_RoundingTolerance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "bob", "carol")

	expenses := NewExpenseService(store)

	// 100 split three ways never sums exactly; within epsilon is accepted.
	_, err := expenses.CreateExpense(ctx, "alice", &models.Expense{
		Description: "Groceries",
		Total:       100,
		Shares: []models.ExpenseShare{
			{UserID: "alice", Paid: 100, Owed: 33.33},
			{UserID: "bob", Paid: 0, Owed: 33.33},
			{UserID: "carol", Paid: 0, Owed: 33.33},
		},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
}

func TestDeleteExpense_RemovesFromLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "bob")

	expenses := NewExpenseService(store)
	balances := NewBalanceService(store)

	expense, err := expenses.CreateExpense(ctx, "alice", &models.Expense{
		Description: "Dinner",
		Total:       100,
		Shares: []models.ExpenseShare{
			{UserID: "alice", Paid: 100, Owed: 50},
			{UserID: "bob", Paid: 0, Owed: 50},
		},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	if err := expenses.DeleteExpense(ctx, "alice", expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	got, err := balances.FriendBalance(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("FriendBalance failed: %v", err)
	}
	if got.Amount != 0 {
		t.Errorf("balance = %v after delete, want 0", got.Amount)
	}

	if err := expenses.DeleteExpense(ctx, "alice", "missing"); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
