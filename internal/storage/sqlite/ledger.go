package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
)

// PairLedger resolves the scope of two users: share rows from non-deleted
// expenses on which both users appear, and transfers between the two in
// either direction. Expenses where only one of them participated are
// excluded even if the other has unrelated shares elsewhere.
func (s *SQLiteStore) PairLedger(ctx context.Context, userA, userB string) (ledger.Scope, error) {
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
		   AND sh.user_id IN (?, ?)
		   AND EXISTS (SELECT 1 FROM expense_shares a WHERE a.expense_id = sh.expense_id AND a.user_id = ?)
		   AND EXISTS (SELECT 1 FROM expense_shares b WHERE b.expense_id = sh.expense_id AND b.user_id = ?)
		 ORDER BY sh.expense_id, sh.user_id`,
		userA, userB, userA, userB,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	transfers, err := s.queryTransfers(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, created_by, created_at
		 FROM transfers
		 WHERE (from_user_id = ? AND to_user_id = ?)
		    OR (from_user_id = ? AND to_user_id = ?)
		 ORDER BY created_at, id`,
		userA, userB, userB, userA,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	participants := []string{userA, userB}
	sort.Strings(participants)

	return ledger.Scope{Participants: participants, Shares: shares, Transfers: transfers}, nil
}

// GroupLedger resolves a group's scope: its current member list, all share
// rows on non-deleted expenses tagged with the group (including rows left by
// removed members), and all transfers tagged with the group.
func (s *SQLiteStore) GroupLedger(ctx context.Context, groupID string) (ledger.Scope, error) {
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
		 WHERE e.group_id = ? AND e.deleted_at IS NULL
		 ORDER BY sh.expense_id, sh.user_id`,
		groupID,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	transfers, err := s.queryTransfers(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, created_by, created_at
		 FROM transfers
		 WHERE group_id = ?
		 ORDER BY created_at, id`,
		groupID,
	)
	if err != nil {
		return ledger.Scope{}, err
	}

	return ledger.Scope{Participants: members, Shares: shares, Transfers: transfers}, nil
}

func (s *SQLiteStore) queryShares(ctx context.Context, query string, args ...interface{}) ([]models.ExpenseShare, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *SQLiteStore) queryTransfers(ctx context.Context, query string, args ...interface{}) ([]models.Transfer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.Transfer
	for rows.Next() {
		var transfer models.Transfer
		var groupID sql.NullString
		if err := rows.Scan(&transfer.ID, &groupID, &transfer.FromUserID, &transfer.ToUserID,
			&transfer.Amount, &transfer.CreatedBy, &transfer.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		if groupID.Valid {
			transfer.GroupID = groupID.String
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}
