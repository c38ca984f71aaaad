package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tallyup-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, id string) {
	t.Helper()
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

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "alice")

	t.Run("GetUserByEmail", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user.ID != "alice" {
			t.Errorf("user ID = %s, want alice", user.ID)
		}
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nobody")
		if !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol"} {
		mustCreateUser(t, store, id)
	}

	group := &models.Group{
		Name:      "Roommates",
		Members:   []string{"alice", "bob", "carol"},
		CreatedBy: "alice",
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Fatal("expected group ID to be generated")
	}

	t.Run("GetGroup returns sorted members", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		want := []string{"alice", "bob", "carol"}
		if len(got.Members) != len(want) {
			t.Fatalf("members = %v, want %v", got.Members, want)
		}
		for i := range want {
			if got.Members[i] != want[i] {
				t.Errorf("members = %v, want %v", got.Members, want)
				break
			}
		}
	})

	t.Run("UpdateGroupMembers replaces the list", func(t *testing.T) {
		if err := store.UpdateGroupMembers(ctx, group.ID, []string{"alice", "bob"}); err != nil {
			t.Fatalf("UpdateGroupMembers failed: %v", err)
		}
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Errorf("members = %v, want [alice bob]", got.Members)
		}
	})

	t.Run("ListGroupsByMember", func(t *testing.T) {
		groups, err := store.ListGroupsByMember(ctx, "alice")
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Errorf("groups = %v, want [%s]", groups, group.ID)
		}
	})

	t.Run("Unknown group is ErrNotFound", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, "missing"); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteGroup(ctx, "missing"); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_PairLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol"} {
		mustCreateUser(t, store, id)
	}

	// Shared by alice and bob.
	shared := &models.Expense{
		Description: "Dinner",
		Total:       100,
		CreatedBy:   "alice",
		Shares: []models.ExpenseShare{
			{UserID: "alice", Paid: 100, Owed: 50},
			{UserID: "bob", Paid: 0, Owed: 50},
		},
	}
	if err := store.CreateExpense(ctx, shared); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// Alice-only expense with carol: irrelevant to the alice/bob pair.
	other := &models.Expense{
		Description: "Taxi",
		Total:       30,
		CreatedBy:   "alice",
		Shares: []models.ExpenseShare{
			{UserID: "alice", Paid: 30, Owed: 15},
			{UserID: "carol", Paid: 0, Owed: 15},
		},
	}
	if err := store.CreateExpense(ctx, other); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// Transfers in both directions; one with carol must be excluded.
	for _, tr := range []*models.Transfer{
		{FromUserID: "bob", ToUserID: "alice", Amount: 20, CreatedBy: "bob", CreatedAt: 1},
		{FromUserID: "alice", ToUserID: "bob", Amount: 5, CreatedBy: "alice", CreatedAt: 2},
		{FromUserID: "carol", ToUserID: "alice", Amount: 99, CreatedBy: "carol", CreatedAt: 3},
	} {
		if err := store.CreateTransfer(ctx, tr); err != nil {
			t.Fatalf("CreateTransfer failed: %v", err)
		}
	}

	scope, err := store.PairLedger(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("PairLedger failed: %v", err)
	}

	if len(scope.Participants) != 2 {
		t.Errorf("participants = %v, want [alice bob]", scope.Participants)
	}
	if len(scope.Shares) != 2 {
		t.Errorf("shares = %v, want only the shared expense rows", scope.Shares)
	}
	for _, share := range scope.Shares {
		if share.ExpenseID != shared.ID {
			t.Errorf("unexpected share from expense %s", share.ExpenseID)
		}
	}
	if len(scope.Transfers) != 2 {
		t.Errorf("transfers = %v, want the 2 alice<->bob transfers", scope.Transfers)
	}

	t.Run("soft-deleted expense drops out", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, shared.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		scope, err := store.PairLedger(ctx, "alice", "bob")
		if err != nil {
			t.Fatalf("PairLedger failed: %v", err)
		}
		if len(scope.Shares) != 0 {
			t.Errorf("shares = %v, want none after soft delete", scope.Shares)
		}
	})

	t.Run("unknown user is ErrNotFound", func(t *testing.T) {
		if _, err := store.PairLedger(ctx, "alice", "nobody"); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_GroupLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "dave"} {
		mustCreateUser(t, store, id)
	}

	group := &models.Group{Name: "Trip", Members: []string{"alice", "bob", "dave"}, CreatedBy: "alice"}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: "Hotel",
		Total:       90,
		CreatedBy:   "alice",
		Shares: []models.ExpenseShare{
			{UserID: "alice", Paid: 90, Owed: 30},
			{UserID: "bob", Paid: 0, Owed: 30},
			{UserID: "dave", Paid: 0, Owed: 30},
		},
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	transfer := &models.Transfer{
		GroupID:    group.ID,
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     30,
		CreatedBy:  "bob",
	}
	if err := store.CreateTransfer(ctx, transfer); err != nil {
		t.Fatalf("CreateTransfer failed: %v", err)
	}

	// Dave leaves; their old share rows must still be read (aggregation
	// skips them, not the query).
	if err := store.UpdateGroupMembers(ctx, group.ID, []string{"alice", "bob"}); err != nil {
		t.Fatalf("UpdateGroupMembers failed: %v", err)
	}

	scope, err := store.GroupLedger(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupLedger failed: %v", err)
	}

	if len(scope.Participants) != 2 {
		t.Errorf("participants = %v, want current members only", scope.Participants)
	}
	if len(scope.Shares) != 3 {
		t.Errorf("shares = %v, want all 3 rows including dave's stale one", scope.Shares)
	}
	if len(scope.Transfers) != 1 {
		t.Errorf("transfers = %v, want 1", scope.Transfers)
	}

	t.Run("unknown group is ErrNotFound", func(t *testing.T) {
		if _, err := store.GroupLedger(ctx, "missing"); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
