package service

import (
	"context"
	"fmt"
	"time"

	"pointsbot/config"
	"pointsbot/events"
	"pointsbot/models"
)

type dailyService struct {
	repo AccountRepository
	bus  EventPublisher
	rng  Rand
	now  func() time.Time
}

// NewDailyService creates a new daily bonus service
func NewDailyService(repo AccountRepository, bus EventPublisher, rng Rand) DailyService {
	return &dailyService{
		repo: repo,
		bus:  bus,
		rng:  rng,
		now:  time.Now,
	}
}

// ClaimDaily credits a random bonus once per cooldown window. The bonus
// credit and the claim timestamp are one atomic repository call, so two
// concurrent claims can never both succeed inside a single window.
func (s *dailyService) ClaimDaily(ctx context.Context, discordID int64) (*models.DailyBonusResult, error) {
	cfg := config.Get()

	if err := s.repo.EnsureExists(ctx, discordID); err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	now := s.now()
	cutoff := now.Add(-cfg.DailyCooldown)
	bonus := cfg.DailyBonusBase + int64(s.rng.Intn(int(cfg.DailyBonusSpread)))

	newBalance, claimed, err := s.repo.ClaimDailyBonus(ctx, discordID, bonus, now, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to claim daily bonus: %w", err)
	}

	if !claimed {
		last, err := s.repo.GetLastDailyClaim(ctx, discordID)
		if err != nil {
			return nil, fmt.Errorf("failed to get last claim: %w", err)
		}
		if last == nil {
			// Claim lost despite an empty timestamp, treat as transient
			return nil, fmt.Errorf("daily claim failed for account %d", discordID)
		}
		return nil, &models.DailyCooldownError{
			Remaining: cfg.DailyCooldown - now.Sub(*last),
		}
	}

	s.bus.Publish(ctx, events.DailyClaimedEvent{
		DiscordID:  discordID,
		Bonus:      bonus,
		NewBalance: newBalance,
	})

	return &models.DailyBonusResult{
		Bonus:      bonus,
		NewBalance: newBalance,
	}, nil
}
