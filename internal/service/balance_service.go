package service

import (
	"context"
	"log/slog"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/metrics"
	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/storage"
)

// BalanceService runs the ledger engine for the two scope kinds. It holds no
// state of its own: every call resolves the scope, recomputes from the full
// record set, and returns request-local values.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GroupDebts is the full engine output for a group scope.
type GroupDebts struct {
	Balances []models.NetBalance `json:"balances"`
	Plan     ledger.Plan         `json:"plan"`
	Message  string              `json:"message"`
}

// FriendBalance computes the requesting user's net balance against a friend:
// positive means the friend owes them, negative means they owe the friend.
func (s *BalanceService) FriendBalance(ctx context.Context, userID, friendID string) (models.NetBalance, error) {
	slog.Info("FriendBalance request", "user_id", userID, "friend_id", friendID)

	scope, err := s.store.PairLedger(ctx, userID, friendID)
	if err != nil {
		slog.Error("FriendBalance failed", "user_id", userID, "friend_id", friendID, "error", err)
		return models.NetBalance{}, err
	}

	balances := ledger.ComputeNetBalances(scope.Participants, scope.Shares, scope.Transfers)
	metrics.BalanceComputations.WithLabelValues("pair").Inc()

	return models.NetBalance{UserID: userID, Amount: balances[userID]}, nil
}

// GroupDebts computes a group's net balances and the simplified settlement
// plan. The acting user must be a current member.
func (s *BalanceService) GroupDebts(ctx context.Context, userID, groupID string) (*GroupDebts, error) {
	slog.Info("GroupDebts request", "group_id", groupID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrForbidden
	}

	scope, err := s.store.GroupLedger(ctx, groupID)
	if err != nil {
		slog.Error("GroupDebts failed", "group_id", groupID, "error", err)
		return nil, err
	}

	balances := ledger.ComputeNetBalances(scope.Participants, scope.Shares, scope.Transfers)
	plan := ledger.Simplify(balances)

	metrics.BalanceComputations.WithLabelValues("group").Inc()
	metrics.SimplifiedTransactions.Observe(float64(plan.OptimizedCount))

	slog.Info("GroupDebts computed",
		"group_id", groupID,
		"members_count", len(scope.Participants),
		"transactions", plan.OptimizedCount,
		"savings", plan.Savings,
	)

	return &GroupDebts{
		Balances: ledger.SortedBalances(balances),
		Plan:     plan,
		Message:  plan.SavingsMessage(),
	}, nil
}
