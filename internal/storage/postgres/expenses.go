package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tallyup/backend/internal/ledger"
	"github.com/tallyup/backend/internal/models"
)

// CreateExpense persists a new expense and its share rows.
func (s *PostgresStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	var groupID *string
	if expense.GroupID != "" {
		groupID = &expense.GroupID
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO expenses (id, group_id, description, total, created_by, created_at, deleted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NULL)`,
		expense.ID, groupID, expense.Description, expense.Total, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		share.ExpenseID = expense.ID
		_, err = tx.Exec(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, paid, owed) VALUES ($1, $2, $3, $4)",
			share.ExpenseID, share.UserID, share.Paid, share.Owed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its share rows.
func (s *PostgresStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID *string
	var deletedAt *int64

	err := s.pool.QueryRow(ctx,
		`SELECT id, group_id, description, total, created_by, created_at, deleted_at
		 FROM expenses WHERE id = $1`,
		expenseID,
	).Scan(&expense.ID, &groupID, &expense.Description, &expense.Total,
		&expense.CreatedBy, &expense.CreatedAt, &deletedAt)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if groupID != nil {
		expense.GroupID = *groupID
	}
	if deletedAt != nil {
		expense.DeletedAt = *deletedAt
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
func (s *PostgresStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, description, total, created_by, created_at
		 FROM expenses
		 WHERE group_id = $1 AND deleted_at IS NULL
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
func (s *PostgresStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE expenses SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now().Unix(), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, ledger.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) expenseShares(ctx context.Context, expenseID string) ([]models.ExpenseShare, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT expense_id, user_id, paid, owed FROM expense_shares WHERE expense_id = $1 ORDER BY user_id",
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
