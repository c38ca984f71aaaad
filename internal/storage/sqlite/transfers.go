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

// CreateTransfer persists a new transfer to the database.
func (s *SQLiteStore) CreateTransfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	var groupID interface{}
	if transfer.GroupID != "" {
		groupID = transfer.GroupID
	}
	var note interface{}
	if transfer.Note != "" {
		note = transfer.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transfers (id, group_id, from_user_id, to_user_id, amount, note, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID, groupID, transfer.FromUserID, transfer.ToUserID,
		transfer.Amount, note, transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	return nil
}

// GetTransfer retrieves a transfer by ID.
func (s *SQLiteStore) GetTransfer(ctx context.Context, transferID string) (*models.Transfer, error) {
	transfer := &models.Transfer{}
	var groupID, note sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, note, created_by, created_at
		 FROM transfers WHERE id = ?`,
		transferID,
	).Scan(&transfer.ID, &groupID, &transfer.FromUserID, &transfer.ToUserID,
		&transfer.Amount, &note, &transfer.CreatedBy, &transfer.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transfer %s: %w", transferID, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	if groupID.Valid {
		transfer.GroupID = groupID.String
	}
	if note.Valid {
		transfer.Note = note.String
	}

	return transfer, nil
}

// DeleteTransfer removes a transfer by ID.
func (s *SQLiteStore) DeleteTransfer(ctx context.Context, transferID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transfers WHERE id = ?", transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transfer %s: %w", transferID, ledger.ErrNotFound)
	}
	return nil
}
