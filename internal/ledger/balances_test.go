package ledger

import (
	"math"
	"testing"

	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/money"
)

func TestComputeNetBalances_PairSimple(t *testing.T) {
	// Expense of 100: A paid all of it, each owes 50.
	shares := []models.ExpenseShare{
		{ExpenseID: "e1", UserID: "A", Paid: 100, Owed: 50},
		{ExpenseID: "e1", UserID: "B", Paid: 0, Owed: 50},
	}

	balances := ComputeNetBalances([]string{"A", "B"}, shares, nil)

	if got := balances["A"]; got != 50.00 {
		t.Errorf("A balance = %v, want 50.00", got)
	}
	if got := balances["B"]; got != -50.00 {
		t.Errorf("B balance = %v, want -50.00", got)
	}
}

func TestComputeNetBalances_ZeroActivityMemberAppears(t *testing.T) {
	balances := ComputeNetBalances([]string{"A", "B", "C"}, nil, nil)

	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	for id, bal := range balances {
		if bal != 0 {
			t.Errorf("%s balance = %v, want 0", id, bal)
		}
	}
}

func TestComputeNetBalances_ZeroSum(t *testing.T) {
	tests := []struct {
		name      string
		shares    []models.ExpenseShare
		transfers []models.Transfer
	}{
		{
			name: "single expense",
			shares: []models.ExpenseShare{
				{ExpenseID: "e1", UserID: "A", Paid: 90, Owed: 30},
				{ExpenseID: "e1", UserID: "B", Paid: 0, Owed: 30},
				{ExpenseID: "e1", UserID: "C", Paid: 0, Owed: 30},
			},
		},
		{
			name: "uneven thirds",
			shares: []models.ExpenseShare{
				{ExpenseID: "e1", UserID: "A", Paid: 100, Owed: 33.33},
				{ExpenseID: "e1", UserID: "B", Paid: 0, Owed: 33.33},
				{ExpenseID: "e1", UserID: "C", Paid: 0, Owed: 33.34},
			},
		},
		{
			name: "expenses plus transfers",
			shares: []models.ExpenseShare{
				{ExpenseID: "e1", UserID: "A", Paid: 60, Owed: 20},
				{ExpenseID: "e1", UserID: "B", Paid: 0, Owed: 20},
				{ExpenseID: "e1", UserID: "C", Paid: 0, Owed: 20},
				{ExpenseID: "e2", UserID: "B", Paid: 45.5, Owed: 22.75},
				{ExpenseID: "e2", UserID: "C", Paid: 0, Owed: 22.75},
			},
			transfers: []models.Transfer{
				{FromUserID: "B", ToUserID: "A", Amount: 20},
				{FromUserID: "C", ToUserID: "B", Amount: 10.25},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := ComputeNetBalances([]string{"A", "B", "C"}, tt.shares, tt.transfers)

			var sum float64
			for _, bal := range balances {
				sum += bal
			}
			if !money.IsZero(money.Round2(sum)) {
				t.Errorf("balances sum to %v, want ~0", sum)
			}
		})
	}
}

// A transfer equal to the sole outstanding debt must net both parties to
// zero. This pins the sign convention: payer's balance increases, payee's
// decreases.
func TestComputeNetBalances_SettlementClosesDebt(t *testing.T) {
	shares := []models.ExpenseShare{
		{ExpenseID: "e1", UserID: "A", Paid: 100, Owed: 50},
		{ExpenseID: "e1", UserID: "B", Paid: 0, Owed: 50},
	}
	transfers := []models.Transfer{
		{FromUserID: "B", ToUserID: "A", Amount: 50},
	}

	balances := ComputeNetBalances([]string{"A", "B"}, shares, transfers)

	for _, id := range []string{"A", "B"} {
		if !money.IsZero(balances[id]) {
			t.Errorf("%s balance = %v after settling, want ~0", id, balances[id])
		}
	}
}

func TestComputeNetBalances_SkipsStaleRows(t *testing.T) {
	// D left the group but their share rows are still on old expenses.
	shares := []models.ExpenseShare{
		{ExpenseID: "e1", UserID: "A", Paid: 30, Owed: 10},
		{ExpenseID: "e1", UserID: "B", Paid: 0, Owed: 10},
		{ExpenseID: "e1", UserID: "D", Paid: 0, Owed: 10},
	}
	// Transfers touching a non-participant are skipped too, not an error.
	transfers := []models.Transfer{
		{FromUserID: "D", ToUserID: "A", Amount: 10},
		{FromUserID: "X", ToUserID: "B", Amount: 99},
	}

	balances := ComputeNetBalances([]string{"A", "B"}, shares, transfers)

	if _, ok := balances["D"]; ok {
		t.Error("removed member D should not appear in balances")
	}
	if got := balances["A"]; got != 20.00 {
		t.Errorf("A balance = %v, want 20.00", got)
	}
	if got := balances["B"]; got != -10.00 {
		t.Errorf("B balance = %v, want -10.00", got)
	}
}

func TestComputeNetBalances_RoundsEachStep(t *testing.T) {
	// Many small additions that would drift without per-step rounding.
	var shares []models.ExpenseShare
	for i := 0; i < 100; i++ {
		shares = append(shares,
			models.ExpenseShare{ExpenseID: "e", UserID: "A", Paid: 0.30, Owed: 0.10},
			models.ExpenseShare{ExpenseID: "e", UserID: "B", Paid: 0, Owed: 0.10},
			models.ExpenseShare{ExpenseID: "e", UserID: "C", Paid: 0, Owed: 0.10},
		)
	}

	balances := ComputeNetBalances([]string{"A", "B", "C"}, shares, nil)

	if got := balances["A"]; math.Abs(got-20.00) > 1e-9 {
		t.Errorf("A balance = %v, want exactly 20.00", got)
	}
	if got := balances["B"]; math.Abs(got-(-10.00)) > 1e-9 {
		t.Errorf("B balance = %v, want exactly -10.00", got)
	}
}

func TestSortedBalances(t *testing.T) {
	balances := map[string]float64{"C": 1, "A": -2, "B": 1}

	got := SortedBalances(balances)

	want := []models.NetBalance{{UserID: "A", Amount: -2}, {UserID: "B", Amount: 1}, {UserID: "C", Amount: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d balances, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("balance[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
