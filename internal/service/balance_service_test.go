package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/money"
	"github.com/tallyup/backend/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tallyup-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createUsers(t *testing.T, store *sqlite.SQLiteStore, ids ...string) {
	t.Helper()
	for _, id := range ids {
		user := &models.User{
			ID:           id,
			Email:        id + "@example.com",
			DisplayName:  id,
			PasswordHash: "x",
			CreatedAt:    1,
			UpdatedAt:    1,
		}
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", id, err)
		}
	}
}

func TestFriendBalance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "bob")

	expenses := NewExpenseService(store)
	balances := NewBalanceService(store)

	_, err := expenses.CreateExpense(ctx, "alice", &models.Expense{
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

	got, err := balances.FriendBalance(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("FriendBalance failed: %v", err)
	}
	if got.Amount != 50.00 {
		t.Errorf("alice's balance = %v, want 50.00 (bob owes her)", got.Amount)
	}

	got, err = balances.FriendBalance(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("FriendBalance failed: %v", err)
	}
	if got.Amount != -50.00 {
		t.Errorf("bob's balance = %v, want -50.00", got.Amount)
	}
}

func TestFriendBalance_SettlementClosesDebt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "bob")

	expenses := NewExpenseService(store)
	transfers := NewTransferService(store)
	balances := NewBalanceService(store)

	_, err := expenses.CreateExpense(ctx, "alice", &models.Expense{
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

	// Bob pays back exactly what he owes.
	_, err = transfers.RecordTransfer(ctx, "bob", &models.Transfer{
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     50,
	})
	if err != nil {
		t.Fatalf("RecordTransfer failed: %v", err)
	}

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		got, err := balances.FriendBalance(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("FriendBalance failed: %v", err)
		}
		if !money.IsZero(got.Amount) {
			t.Errorf("%s's balance = %v after settling, want ~0", pair[0], got.Amount)
		}
	}
}

func TestGroupDebts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "bob", "carol")

	groups := NewGroupService(store)
	expenses := NewExpenseService(store)
	balances := NewBalanceService(store)

	group, err := groups.CreateGroup(ctx, "alice", "Trip", []string{"bob", "carol"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	_, err = expenses.CreateExpense(ctx, "alice", &models.Expense{
		GroupID:     group.ID,
		Description: "Hotel",
		Total:       90,
		Shares: []models.ExpenseShare{
			{UserID: "alice", Paid: 90, Owed: 30},
			{UserID: "bob", Paid: 0, Owed: 30},
			{UserID: "carol", Paid: 0, Owed: 30},
		},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	debts, err := balances.GroupDebts(ctx, "alice", group.ID)
	if err != nil {
		t.Fatalf("GroupDebts failed: %v", err)
	}

	want := []models.SimplifiedTransaction{
		{From: "bob", To: "alice", Amount: 30},
		{From: "carol", To: "alice", Amount: 30},
	}
	if len(debts.Plan.Transactions) != len(want) {
		t.Fatalf("transactions = %v, want %v", debts.Plan.Transactions, want)
	}
	for i := range want {
		if debts.Plan.Transactions[i] != want[i] {
			t.Errorf("transaction[%d] = %v, want %v", i, debts.Plan.Transactions[i], want[i])
		}
	}

	// Balances are sorted by user ID and sum to ~0.
	var sum float64
	for _, bal := range debts.Balances {
		sum += bal.Amount
	}
	if math.Abs(sum) > money.Epsilon {
		t.Errorf("balances sum to %v, want ~0", sum)
	}
	if debts.Balances[0].UserID != "alice" || debts.Balances[0].Amount != 60.00 {
		t.Errorf("balances[0] = %+v, want alice +60.00", debts.Balances[0])
	}

	if debts.Message == "" {
		t.Error("expected a savings message")
	}
}

func TestGroupDebts_AlreadySettled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "bob")

	groups := NewGroupService(store)
	balances := NewBalanceService(store)

	group, err := groups.CreateGroup(ctx, "alice", "Lunch", []string{"bob"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	debts, err := balances.GroupDebts(ctx, "alice", group.ID)
	if err != nil {
		t.Fatalf("GroupDebts failed: %v", err)
	}
	if len(debts.Plan.Transactions) != 0 {
		t.Errorf("expected no transactions, got %v", debts.Plan.Transactions)
	}
	if debts.Message != "Already optimized!" {
		t.Errorf("message = %q, want %q", debts.Message, "Already optimized!")
	}
}

func TestGroupDebts_Authorization(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUsers(t, store, "alice", "mallory")

	groups := NewGroupService(store)
	balances := NewBalanceService(store)

	group, err := groups.CreateGroup(ctx, "alice", "Private", nil)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if _, err := balances.GroupDebts(ctx, "mallory", group.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := balances.GroupDebts(ctx, "alice", "missing"); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
