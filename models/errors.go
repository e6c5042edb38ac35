package models

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors surfaced to the requester. All are user-correctable,
// command handlers translate them into ephemeral notices.
var (
	ErrBelowMinimumStake    = errors.New("bet is below the minimum stake")
	ErrBelowMinimumTransfer = errors.New("amount is below the minimum transfer")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidTarget        = errors.New("invalid transfer target")
	ErrAlreadyClaimedToday  = errors.New("daily bonus already claimed")
	ErrSessionExpired       = errors.New("leaderboard session expired")
	ErrNotSessionOwner      = errors.New("leaderboard session belongs to another member")
)

// DailyCooldownError reports how long until the next daily bonus claim.
// It unwraps to ErrAlreadyClaimedToday.
type DailyCooldownError struct {
	Remaining time.Duration
}

func (e *DailyCooldownError) Error() string {
	h, m := e.HoursMinutes()
	return fmt.Sprintf("daily bonus already claimed, %dh %dm remaining", h, m)
}

func (e *DailyCooldownError) Unwrap() error {
	return ErrAlreadyClaimedToday
}

// HoursMinutes returns the remaining cooldown as whole hours and minutes
func (e *DailyCooldownError) HoursMinutes() (int, int) {
	hours := int(e.Remaining / time.Hour)
	minutes := int(e.Remaining%time.Hour) / int(time.Minute)
	return hours, minutes
}
