package repository

import (
	"context"
	"fmt"
	"time"

	"pointsbot/database"
	"pointsbot/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable abstracts over a pool and a transaction
type queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository provides atomic access to the durable account ledger
type AccountRepository struct {
	db *database.DB
	q  queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db, q: db.Pool}
}

// EnsureExists creates the account with a zero balance if it does not exist.
// Idempotent, safe to call on every observed activity.
func (r *AccountRepository) EnsureExists(ctx context.Context, discordID int64) error {
	query := `
		INSERT INTO accounts (discord_id)
		VALUES ($1)
		ON CONFLICT (discord_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, discordID); err != nil {
		return fmt.Errorf("failed to ensure account %d: %w", discordID, err)
	}

	return nil
}

// GetByDiscordID retrieves an account. Returns nil if the account does not exist.
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	query := `
		SELECT discord_id, points, last_daily_claim, created_at, updated_at
		FROM accounts
		WHERE discord_id = $1
	`

	var account models.Account
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&account.DiscordID,
		&account.Points,
		&account.LastDailyClaim,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", discordID, err)
	}

	return &account, nil
}

// GetPoints returns the current balance. Unknown accounts read as zero.
func (r *AccountRepository) GetPoints(ctx context.Context, discordID int64) (int64, error) {
	account, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, nil
	}
	return account.Points, nil
}

// AddPoints atomically credits an account. Income paths only, the amount is
// never balance-checked.
func (r *AccountRepository) AddPoints(ctx context.Context, discordID int64, amount int64) error {
	query := `
		UPDATE accounts
		SET points = points + $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, discordID)
	if err != nil {
		return fmt.Errorf("failed to add points for account %d: %w", discordID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", discordID)
	}

	return nil
}

// ApplyWager applies the signed net result of a wager in a single statement.
// The stake check and the balance change are one atomic unit: the update only
// fires when the account still holds at least the stake, so two concurrent
// wagers can never both spend the same points.
func (r *AccountRepository) ApplyWager(ctx context.Context, discordID int64, stake int64, delta int64) (int64, error) {
	query := `
		UPDATE accounts
		SET points = points + $1, updated_at = NOW()
		WHERE discord_id = $2 AND points >= $3
		RETURNING points
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, delta, discordID, stake).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		points, gErr := r.GetPoints(ctx, discordID)
		if gErr != nil {
			return 0, fmt.Errorf("failed to check balance for account %d: %w", discordID, gErr)
		}
		return 0, fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientBalance, points, stake)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply wager for account %d: %w", discordID, err)
	}

	return newBalance, nil
}

// ClaimDailyBonus credits the bonus and stamps the claim in one statement.
// The update only fires when the stored claim timestamp is absent or at/before
// the cutoff, which makes the claim exactly-once per cooldown window even
// under concurrent attempts. Returns the new balance and whether the claim
// was applied.
func (r *AccountRepository) ClaimDailyBonus(ctx context.Context, discordID int64, bonus int64, now time.Time, cutoff time.Time) (int64, bool, error) {
	query := `
		UPDATE accounts
		SET points = points + $1, last_daily_claim = $2, updated_at = NOW()
		WHERE discord_id = $3
		  AND (last_daily_claim IS NULL OR last_daily_claim <= $4)
		RETURNING points
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, bonus, now, discordID, cutoff).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to claim daily bonus for account %d: %w", discordID, err)
	}

	return newBalance, true, nil
}

// GetLastDailyClaim returns the timestamp of the last successful claim,
// or nil when the account never claimed (or does not exist).
func (r *AccountRepository) GetLastDailyClaim(ctx context.Context, discordID int64) (*time.Time, error) {
	account, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return account.LastDailyClaim, nil
}

// TransferPoints moves points between two accounts in one transaction.
// The debit is conditional on sufficient balance; on shortfall the whole
// transfer rolls back, so it is never observable half-applied.
func (r *AccountRepository) TransferPoints(ctx context.Context, fromID, toID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		debit := `
			UPDATE accounts
			SET points = points - $1, updated_at = NOW()
			WHERE discord_id = $2 AND points >= $1
		`

		result, err := tx.Exec(ctx, debit, amount, fromID)
		if err != nil {
			return fmt.Errorf("failed to debit account %d: %w", fromID, err)
		}
		if result.RowsAffected() == 0 {
			var points int64
			if err := tx.QueryRow(ctx, `SELECT COALESCE((SELECT points FROM accounts WHERE discord_id = $1), 0)`, fromID).Scan(&points); err != nil {
				return fmt.Errorf("failed to check balance for account %d: %w", fromID, err)
			}
			return fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientBalance, points, amount)
		}

		credit := `
			UPDATE accounts
			SET points = points + $1, updated_at = NOW()
			WHERE discord_id = $2
		`

		result, err = tx.Exec(ctx, credit, amount, toID)
		if err != nil {
			return fmt.Errorf("failed to credit account %d: %w", toID, err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("account %d not found", toID)
		}

		return nil
	})
}

// GetTopAccounts returns up to limit accounts ordered by points descending,
// ties broken by discord id for a deterministic ranking.
func (r *AccountRepository) GetTopAccounts(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT discord_id, points
		FROM accounts
		ORDER BY points DESC, discord_id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top accounts: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.DiscordID, &entry.Points); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top accounts: %w", err)
	}

	return entries, nil
}
