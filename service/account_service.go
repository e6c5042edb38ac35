package service

import (
	"context"
	"fmt"

	"pointsbot/models"
)

// accountService implements the AccountService interface
type accountService struct {
	repo AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(repo AccountRepository) AccountService {
	return &accountService{repo: repo}
}

// GetOrCreateAccount retrieves an account, lazily creating it with a zero
// balance on first observed activity
func (s *accountService) GetOrCreateAccount(ctx context.Context, discordID int64) (*models.Account, error) {
	if err := s.repo.EnsureExists(ctx, discordID); err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	account, err := s.repo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %d missing after ensure", discordID)
	}

	return account, nil
}

// GetBalance returns the current balance for an account
func (s *accountService) GetBalance(ctx context.Context, discordID int64) (int64, error) {
	return s.repo.GetPoints(ctx, discordID)
}
