package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
)

// PairLedger resolves the scope of two users. See the SQLite implementation
// for the row-selection rules; both backends feed the same engine.
func (s *PostgresStore) PairLedger(ctx context.Context, userA, userB string) (ledger.Scope, error) {
	for _, id := range []string{userA, userB} {
		exists, err := s.userExists(ctx, id)
		if err != nil {
			return ledger.Scope{}, err
		}
		if !exists {
			return ledger.Scope{}, fmt.Errorf("user %s: %w", id, ledger.ErrNotFound)
		}
	}

	shares, err := s.queryShares(ctx,
		`SELECT sh.expense_id, sh.user_id, sh.paid, sh.owed
		 FROM expense_shares sh
		 JOIN expenses e ON e.id = sh.expense_id
		 WHERE e.deleted_at IS NULL
		   AND sh.user_id IN ($1, $2)
		   AND EXISTS (SELECT 1 FROM expense_shares a WHERE a.expense_id = sh.expense_id AND a.user_id = $1)
		   AND EXISTS (SELECT 1 FROM expense_shares b WHERE b.expense_id = sh.expense_id AND b.user_id = $2)
		 ORDER BY sh.expense_id, sh.user_id`,
		userA, userB,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	transfers, err := s.queryTransfers(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, created_by, created_at
		 FROM transfers
		 WHERE (from_user_id = $1 AND to_user_id = $2)
		    OR (from_user_id = $2 AND to_user_id = $1)
		 ORDER BY created_at, id`,
		userA, userB,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	participants := []string{userA, userB}
	sort.Strings(participants)

	return ledger.Scope{Participants: participants, Shares: shares, Transfers: transfers}, nil
}

// GroupLedger resolves a group's scope.
func (s *PostgresStore) GroupLedger(ctx context.Context, groupID string) (ledger.Scope, error) {
	if exists, err := s.groupExists(ctx, groupID); err != nil {
		return ledger.Scope{}, err
	} else if !exists {
		return ledger.Scope{}, fmt.Errorf("group %s: %w", groupID, ledger.ErrNotFound)
	}

	members, err := s.groupMembers(ctx, groupID)
	if err != nil {
		return ledger.Scope{}, err
	}

	shares, err := s.queryShares(ctx,
		`SELECT sh.expense_id, sh.user_id, sh.paid, sh.owed
		 FROM expense_shares sh
		 JOIN expenses e ON e.id = sh.expense_id
		 WHERE e.group_id = $1 AND e.deleted_at IS NULL
		 ORDER BY sh.expense_id, sh.user_id`,
		groupID,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	transfers, err := s.queryTransfers(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, created_by, created_at
		 FROM transfers
		 WHERE group_id = $1
		 ORDER BY created_at, id`,
		groupID,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	return ledger.Scope{Participants: members, Shares: shares, Transfers: transfers}, nil
}

func (s *PostgresStore) queryShares(ctx context.Context, query string, args ...interface{}) ([]models.ExpenseShare, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ExpenseShare
	for rows.Next() {
		var share models.ExpenseShare
		if err := rows.Scan(&share.ExpenseID, &share.UserID, &share.Paid, &share.Owed); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}

	return shares, nil
}

func (s *PostgresStore) queryTransfers(ctx context.Context, query string, args ...interface{}) ([]models.Transfer, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.Transfer
	for rows.Next() {
		var transfer models.Transfer
		var groupID *string
		if err := rows.Scan(&transfer.ID, &groupID, &transfer.FromUserID, &transfer.ToUserID,
			&transfer.Amount, &transfer.CreatedBy, &transfer.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		if groupID != nil {
			transfer.GroupID = *groupID
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}
