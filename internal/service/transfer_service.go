package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/money"
	"github.com/tallyup/backend/internal/storage"
)

// TransferService records settlement payments between users.
type TransferService struct {
	store storage.Store
}

// NewTransferService creates a new TransferService with the given storage backend.
func NewTransferService(store storage.Store) *TransferService {
	return &TransferService{store: store}
}

// RecordTransfer validates and persists a payment. Recording a transfer
// invalidates any caller-side cache of balances for the affected scope.
func (s *TransferService) RecordTransfer(ctx context.Context, userID string, transfer *models.Transfer) (*models.Transfer, error) {
	slog.Info("RecordTransfer request",
		"from", transfer.FromUserID,
		"to", transfer.ToUserID,
		"amount", transfer.Amount,
		"group_id", transfer.GroupID,
	)

	if transfer.FromUserID == "" || transfer.ToUserID == "" {
		return nil, fmt.Errorf("%w: both endpoints required", ErrInvalidInput)
	}
	if transfer.FromUserID == transfer.ToUserID {
		return nil, fmt.Errorf("%w: cannot pay yourself", ErrInvalidInput)
	}
	if transfer.Amount <= money.Epsilon {
		return nil, fmt.Errorf("%w: amount must exceed %.2f", ErrInvalidInput, money.Epsilon)
	}

	if transfer.GroupID != "" {
		group, err := s.store.GetGroup(ctx, transfer.GroupID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(userID) {
			return nil, ErrForbidden
		}
		if !group.HasMember(transfer.FromUserID) || !group.HasMember(transfer.ToUserID) {
			return nil, fmt.Errorf("%w: both endpoints must be group members", ErrInvalidInput)
		}
	} else {
		for _, id := range []string{transfer.FromUserID, transfer.ToUserID} {
			if _, err := s.store.GetUserByID(ctx, id); err != nil {
				return nil, fmt.Errorf("failed to resolve user %s: %w", id, err)
			}
		}
	}

	transfer.Amount = money.Round2(transfer.Amount)
	transfer.CreatedBy = userID
	if err := s.store.CreateTransfer(ctx, transfer); err != nil {
		slog.Error("RecordTransfer failed", "error", err)
		return nil, err
	}

	slog.Info("Transfer recorded", "transfer_id", transfer.ID)
	return transfer, nil
}

// DeleteTransfer removes a recorded payment.
func (s *TransferService) DeleteTransfer(ctx context.Context, userID, transferID string) error {
	transfer, err := s.store.GetTransfer(ctx, transferID)
	if err != nil {
		return err
	}
	if transfer.GroupID != "" {
		group, err := s.store.GetGroup(ctx, transfer.GroupID)
		if err != nil {
			return err
		}
		if !group.HasMember(userID) {
			return ErrForbidden
		}
	}

	if err := s.store.DeleteTransfer(ctx, transferID); err != nil {
		slog.Error("DeleteTransfer failed", "transfer_id", transferID, "error", err)
		return err
	}

	slog.Info("Transfer deleted", "transfer_id", transferID)
	return nil
}
