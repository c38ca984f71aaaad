package ledger

import (
	"fmt"
	"sort"

	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/money"
)

// Plan is the output of debt simplification: the suggested payments plus
// before/after transaction counts.
type Plan struct {
	Transactions   []models.SimplifiedTransaction `json:"transactions"`
	OriginalCount  int                            `json:"original_count"`
	OptimizedCount int                            `json:"optimized_count"`
	Savings        int                            `json:"savings"`
}

// SavingsMessage renders the human-readable summary for the plan.
func (p Plan) SavingsMessage() string {
	if p.Savings > 0 {
		return fmt.Sprintf("Optimized %d transactions to %d, saving %d transaction(s)!",
			p.OriginalCount, p.OptimizedCount, p.Savings)
	}
	return "Already optimized!"
}

type party struct {
	userID string
	amount float64 // positive magnitude
}

// Simplify produces a minimal-ish list of payments that would net every
// balance to zero. It is a greedy largest-vs-largest sweep, not an exact
// minimum-transaction solver: the exact problem is a subset-sum search and
// NP-hard, while the sweep terminates in at most debtors+creditors-1 steps
// and is good enough in practice. If an exact solver is ever needed it can
// replace this function without touching callers.
//
// Equal magnitudes are ordered by user ID so the output is reproducible.
func Simplify(balances map[string]float64) Plan {
	var debtors, creditors []party
	for id, bal := range balances {
		switch {
		case bal < -money.Epsilon:
			debtors = append(debtors, party{userID: id, amount: -bal})
		case bal > money.Epsilon:
			creditors = append(creditors, party{userID: id, amount: bal})
		}
	}
	sortByMagnitude(debtors)
	sortByMagnitude(creditors)

	nonZero := len(debtors) + len(creditors)

	var transactions []models.SimplifiedTransaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		settled := debtors[i].amount
		if creditors[j].amount < settled {
			settled = creditors[j].amount
		}

		if settled > money.Epsilon {
			transactions = append(transactions, models.SimplifiedTransaction{
				From:   debtors[i].userID,
				To:     creditors[j].userID,
				Amount: money.Round2(settled),
			})
		}

		debtors[i].amount = money.Round2(debtors[i].amount - settled)
		creditors[j].amount = money.Round2(creditors[j].amount - settled)

		if debtors[i].amount <= money.Epsilon {
			i++
		}
		if creditors[j].amount <= money.Epsilon {
			j++
		}
	}

	// Baseline heuristic for "payments needed without simplification".
	originalCount := nonZero / 2
	if len(transactions) > originalCount {
		originalCount = len(transactions)
	}

	return Plan{
		Transactions:   transactions,
		OriginalCount:  originalCount,
		OptimizedCount: len(transactions),
		Savings:        originalCount - len(transactions),
	}
}

func sortByMagnitude(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].userID < parties[j].userID
	})
}
