package models

import (
	"time"
)

// Account represents a Discord member's point balance
type Account struct {
	DiscordID      int64      `db:"discord_id"`
	Points         int64      `db:"points"`
	LastDailyClaim *time.Time `db:"last_daily_claim"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// LeaderboardEntry is one row of a ranked balance snapshot
type LeaderboardEntry struct {
	Rank      int
	DiscordID int64
	Points    int64
}
