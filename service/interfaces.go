package service

import (
	"context"
	"time"

	"pointsbot/events"
	"pointsbot/models"
)

// AccountRepository defines the interface for ledger data access.
// Implementations must serialize balance mutations per account so that a
// check-then-act sequence never observes an intervening write.
type AccountRepository interface {
	// EnsureExists creates the account with a zero balance if absent
	EnsureExists(ctx context.Context, discordID int64) error

	// GetByDiscordID retrieves an account, nil if unknown
	GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error)

	// GetPoints returns the current balance, zero for unknown accounts
	GetPoints(ctx context.Context, discordID int64) (int64, error)

	// AddPoints atomically credits an account (income paths only)
	AddPoints(ctx context.Context, discordID int64, amount int64) error

	// ApplyWager atomically applies a wager's net delta, refusing with
	// models.ErrInsufficientBalance when the balance is below the stake
	ApplyWager(ctx context.Context, discordID int64, stake int64, delta int64) (int64, error)

	// ClaimDailyBonus credits the bonus and stamps the claim as one atomic
	// unit; reports false when the stored claim is newer than the cutoff
	ClaimDailyBonus(ctx context.Context, discordID int64, bonus int64, now time.Time, cutoff time.Time) (int64, bool, error)

	// GetLastDailyClaim returns the last claim timestamp, nil if never claimed
	GetLastDailyClaim(ctx context.Context, discordID int64) (*time.Time, error)

	// TransferPoints atomically debits one account and credits another
	TransferPoints(ctx context.Context, fromID, toID int64, amount int64) error

	// GetTopAccounts returns accounts ordered by points descending,
	// ties broken by discord id
	GetTopAccounts(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// GetOrCreateAccount retrieves an account, lazily creating it at zero
	GetOrCreateAccount(ctx context.Context, discordID int64) (*models.Account, error)

	// GetBalance returns the current balance for an account
	GetBalance(ctx context.Context, discordID int64) (int64, error)
}

// GamesService defines the interface for the wagering games
type GamesService interface {
	// PlaySlots draws three symbols, a triple pays 5x the stake
	PlaySlots(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error)

	// PlayJackpot draws a multiplier from the jackpot distribution
	PlayJackpot(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error)

	// PlayRoulette spins the wheel against a chosen color
	PlayRoulette(ctx context.Context, discordID int64, color models.RouletteColor, bet int64) (*models.WagerResult, error)

	// PlayDice rolls two dice, above seven doubles, seven pushes
	PlayDice(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error)
}

// DailyService defines the interface for the daily bonus
type DailyService interface {
	// ClaimDaily claims the daily bonus, or reports the remaining cooldown
	// via *models.DailyCooldownError
	ClaimDaily(ctx context.Context, discordID int64) (*models.DailyBonusResult, error)
}

// TransferService defines the interface for member-to-member transfers
type TransferService interface {
	// Transfer moves points from the requester to the target.
	// targetIsBot marks service accounts, which are never valid targets.
	Transfer(ctx context.Context, fromID, toID int64, amount int64, targetIsBot bool) (*models.TransferResult, error)
}

// LeaderboardService defines the interface for paged leaderboard sessions
type LeaderboardService interface {
	// StartSession captures a ranked snapshot and opens a paging session
	StartSession(ctx context.Context, requesterID int64) (*LeaderboardView, error)

	// Page advances or retreats the requester's session by one page
	Page(sessionID string, actorID int64, direction PageDirection) (*LeaderboardView, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
