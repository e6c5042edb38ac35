package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyCooldownError(t *testing.T) {
	err := &DailyCooldownError{Remaining: 14*time.Hour + 35*time.Minute}

	assert.ErrorIs(t, err, ErrAlreadyClaimedToday)

	hours, minutes := err.HoursMinutes()
	assert.Equal(t, 14, hours)
	assert.Equal(t, 35, minutes)
	assert.Contains(t, err.Error(), "14h 35m")

	var cooldown *DailyCooldownError
	assert.True(t, errors.As(err, &cooldown))
}
