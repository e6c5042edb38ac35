package service

import (
	"context"
	"fmt"
	"math"

	"pointsbot/config"
	"pointsbot/events"
	"pointsbot/models"
)

type gamesService struct {
	repo AccountRepository
	bus  EventPublisher
	rng  Rand
}

// NewGamesService creates a new wagering games service
func NewGamesService(repo AccountRepository, bus EventPublisher, rng Rand) GamesService {
	return &gamesService{
		repo: repo,
		bus:  bus,
		rng:  rng,
	}
}

func (s *gamesService) PlaySlots(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error) {
	if err := s.validateBet(bet); err != nil {
		return nil, err
	}

	symbols, multiplier := spinSlots(s.rng)

	result, err := s.settle(ctx, discordID, models.GameSlots, bet, multiplier)
	if err != nil {
		return nil, err
	}
	result.Symbols = symbols

	return result, nil
}

func (s *gamesService) PlayJackpot(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error) {
	if err := s.validateBet(bet); err != nil {
		return nil, err
	}

	multiplier := rollJackpot(s.rng)

	return s.settle(ctx, discordID, models.GameJackpot, bet, multiplier)
}

func (s *gamesService) PlayRoulette(ctx context.Context, discordID int64, color models.RouletteColor, bet int64) (*models.WagerResult, error) {
	if err := s.validateBet(bet); err != nil {
		return nil, err
	}

	rolled, multiplier := spinRoulette(s.rng, color)

	result, err := s.settle(ctx, discordID, models.GameRoulette, bet, multiplier)
	if err != nil {
		return nil, err
	}
	result.ChosenColor = color
	result.RolledColor = rolled

	return result, nil
}

func (s *gamesService) PlayDice(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error) {
	if err := s.validateBet(bet); err != nil {
		return nil, err
	}

	rolls, sum, multiplier := rollDice(s.rng)

	result, err := s.settle(ctx, discordID, models.GameDice, bet, multiplier)
	if err != nil {
		return nil, err
	}
	result.DiceRolls = rolls
	result.DiceSum = sum

	return result, nil
}

func (s *gamesService) validateBet(bet int64) error {
	minimum := config.Get().MinimumBet
	if bet < minimum {
		return fmt.Errorf("%w: minimum is %d points", models.ErrBelowMinimumStake, minimum)
	}
	return nil
}

// settle converts the rolled multiplier into a signed delta and applies it
// to the ledger as a single atomic adjustment. The stake is never debited
// separately from the payout, so a wager can never be observed half-applied.
func (s *gamesService) settle(ctx context.Context, discordID int64, game models.GameKind, bet int64, multiplier float64) (*models.WagerResult, error) {
	if err := s.repo.EnsureExists(ctx, discordID); err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	payout := int64(math.Floor(float64(bet) * multiplier))
	delta := payout - bet

	newBalance, err := s.repo.ApplyWager(ctx, discordID, bet, delta)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.WagerResolvedEvent{
		DiscordID:  discordID,
		Game:       game,
		Bet:        bet,
		Delta:      delta,
		NewBalance: newBalance,
	})

	return &models.WagerResult{
		Game:       game,
		Bet:        bet,
		Multiplier: multiplier,
		Payout:     payout,
		Delta:      delta,
		NewBalance: newBalance,
	}, nil
}
