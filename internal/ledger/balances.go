package ledger

import (
	"log/slog"
	"sort"

	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/money"
)

// ComputeNetBalances folds the raw rows of a scope into one signed balance
// per participant. Every participant appears in the result, including members
// with zero activity.
//
// Shares belonging to users outside the participant set are skipped, not an
// error: a group scope may contain stale rows left behind by removed members.
// The same policy applies to transfers with an endpoint outside the set.
//
// A transfer increases the payer's balance and decreases the payee's: paying
// off a debt moves the payer toward zero from below and the payee toward zero
// from above.
func ComputeNetBalances(participants []string, shares []models.ExpenseShare, transfers []models.Transfer) map[string]float64 {
	balances := make(map[string]float64, len(participants))
	for _, id := range participants {
		balances[id] = 0
	}

	for _, sh := range shares {
		if _, ok := balances[sh.UserID]; !ok {
			continue
		}
		balances[sh.UserID] = money.Round2(balances[sh.UserID] + sh.Paid - sh.Owed)
	}

	for _, tr := range transfers {
		_, fromOK := balances[tr.FromUserID]
		_, toOK := balances[tr.ToUserID]
		if !fromOK || !toOK {
			continue
		}
		balances[tr.FromUserID] = money.Round2(balances[tr.FromUserID] + tr.Amount)
		balances[tr.ToUserID] = money.Round2(balances[tr.ToUserID] - tr.Amount)
	}

	// Debts and credits are zero-sum by construction. A non-zero sum means
	// inconsistent input data (or a calculator bug), not a request-level
	// failure: log loudly and return the best-effort result.
	var sum float64
	for _, bal := range balances {
		sum += bal
	}
	if !money.IsZero(money.Round2(sum)) {
		slog.Warn("net balances do not sum to zero",
			"sum", money.Round2(sum),
			"participants", len(participants),
			"shares", len(shares),
			"transfers", len(transfers),
		)
	}

	return balances
}

// SortedBalances converts a balance map to a slice ordered by user ID, for
// deterministic output.
func SortedBalances(balances map[string]float64) []models.NetBalance {
	out := make([]models.NetBalance, 0, len(balances))
	for id, amount := range balances {
		out = append(out, models.NetBalance{UserID: id, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
