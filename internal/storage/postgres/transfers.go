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

// CreateTransfer persists a new transfer.
func (s *PostgresStore) CreateTransfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	var groupID, note *string
	if transfer.GroupID != "" {
		groupID = &transfer.GroupID
	}
	if transfer.Note != "" {
		note = &transfer.Note
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO transfers (id, group_id, from_user_id, to_user_id, amount, note, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transfer.ID, groupID, transfer.FromUserID, transfer.ToUserID,
		transfer.Amount, note, transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	return nil
}

// GetTransfer retrieves a transfer by ID.
func (s *PostgresStore) GetTransfer(ctx context.Context, transferID string) (*models.Transfer, error) {
	transfer := &models.Transfer{}
	var groupID, note *string

	err := s.pool.QueryRow(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, note, created_by, created_at
		 FROM transfers WHERE id = $1`,
		transferID,
	).Scan(&transfer.ID, &groupID, &transfer.FromUserID, &transfer.ToUserID,
		&transfer.Amount, &note, &transfer.CreatedBy, &transfer.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("transfer %s: %w", transferID, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	if groupID != nil {
		transfer.GroupID = *groupID
	}
	if note != nil {
		transfer.Note = *note
	}

	return transfer, nil
}

// DeleteTransfer removes a transfer by ID.
func (s *PostgresStore) DeleteTransfer(ctx context.Context, transferID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM transfers WHERE id = $1", transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transfer %s: %w", transferID, ledger.ErrNotFound)
	}
	return nil
}
