package service

import (
	"context"
	"fmt"

	"pointsbot/config"
	"pointsbot/events"
	"pointsbot/models"
)

type transferService struct {
	repo AccountRepository
	bus  EventPublisher
}

// NewTransferService creates a new transfer service
func NewTransferService(repo AccountRepository, bus EventPublisher) TransferService {
	return &transferService{
		repo: repo,
		bus:  bus,
	}
}

// Transfer moves points from the requester to the target. The debit and
// credit happen in one ledger transaction, zero-sum by construction.
func (s *transferService) Transfer(ctx context.Context, fromID, toID int64, amount int64, targetIsBot bool) (*models.TransferResult, error) {
	cfg := config.Get()

	if targetIsBot || fromID == toID {
		return nil, models.ErrInvalidTarget
	}
	if amount < cfg.MinimumTransfer {
		return nil, fmt.Errorf("%w: minimum is %d points", models.ErrBelowMinimumTransfer, cfg.MinimumTransfer)
	}

	if err := s.repo.EnsureExists(ctx, fromID); err != nil {
		return nil, fmt.Errorf("failed to ensure sender account: %w", err)
	}
	if err := s.repo.EnsureExists(ctx, toID); err != nil {
		return nil, fmt.Errorf("failed to ensure target account: %w", err)
	}

	if err := s.repo.TransferPoints(ctx, fromID, toID, amount); err != nil {
		return nil, err
	}

	newBalance, err := s.repo.GetPoints(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender balance: %w", err)
	}

	s.bus.Publish(ctx, events.TransferCompletedEvent{
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
	})

	return &models.TransferResult{
		Amount:     amount,
		TargetID:   toID,
		NewBalance: newBalance,
	}, nil
}
