package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
)

// CreateExpense persists a new expense and its share rows.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	var groupID interface{}
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, total, created_by, created_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL)`,
		expense.ID, groupID, expense.Description, expense.Total, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		share.ExpenseID = expense.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, paid, owed) VALUES (?, ?, ?, ?)",
			share.ExpenseID, share.UserID, share.Paid, share.Owed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its share rows.
// Soft-deleted expenses are still retrievable by ID; only ledger reads
// exclude them.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID sql.NullString
	var deletedAt sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, total, created_by, created_at, deleted_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &groupID, &expense.Description, &expense.Total,
		&expense.CreatedBy, &expense.CreatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if groupID.Valid {
		expense.GroupID = groupID.String
	}
	if deletedAt.Valid {
		expense.DeletedAt = deletedAt.Int64
	}

	shares, err := s.expenseShares(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Shares = shares

	return expense, nil
}

// ListExpensesByGroup retrieves all non-deleted expenses for a group,
// newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, total, created_by, created_at
		 FROM expenses
		 WHERE group_id = ? AND deleted_at IS NULL
		 ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{GroupID: groupID}
		if err := rows.Scan(&expense.ID, &expense.Description, &expense.Total,
			&expense.CreatedBy, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		shares, err := s.expenseShares(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Shares = shares
	}

	return expenses, nil
}

// DeleteExpense soft-deletes an expense.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().Unix(), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, ledger.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) expenseShares(ctx context.Context, expenseID string) ([]models.ExpenseShare, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, user_id, paid, owed FROM expense_shares WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
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
