package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointsbot/events"
	"pointsbot/models"
)

func newTestDailyService(repo AccountRepository, bus EventPublisher, rng Rand, now time.Time) *dailyService {
	return &dailyService{
		repo: repo,
		bus:  bus,
		rng:  rng,
		now:  func() time.Time { return now },
	}
}

func TestDailyService_ClaimSucceeds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockAccountRepository)
	bus := newCapturingBus()
	rng := &scriptedRand{ints: []int{37}} // bonus 100 + 37

	svc := newTestDailyService(mockRepo, bus, rng, now)

	cutoff := now.Add(-24 * time.Hour)
	mockRepo.On("EnsureExists", ctx, int64(42)).Return(nil)
	mockRepo.On("ClaimDailyBonus", ctx, int64(42), int64(137), now, cutoff).
		Return(int64(637), true, nil)

	result, err := svc.ClaimDaily(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(137), result.Bonus)
	assert.Equal(t, int64(637), result.NewBalance)

	published := bus.Events()
	require.Len(t, published, 1)
	claimEvent := published[0].(events.DailyClaimedEvent)
	assert.Equal(t, int64(137), claimEvent.Bonus)

	mockRepo.AssertExpectations(t)
}

func TestDailyService_ClaimOnCooldown(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lastClaim := now.Add(-10 * time.Hour)

	mockRepo := new(MockAccountRepository)
	bus := newCapturingBus()
	rng := &scriptedRand{ints: []int{0}}

	svc := newTestDailyService(mockRepo, bus, rng, now)

	cutoff := now.Add(-24 * time.Hour)
	mockRepo.On("EnsureExists", ctx, int64(42)).Return(nil)
	mockRepo.On("ClaimDailyBonus", ctx, int64(42), int64(100), now, cutoff).
		Return(int64(0), false, nil)
	mockRepo.On("GetLastDailyClaim", ctx, int64(42)).Return(&lastClaim, nil)

	_, err := svc.ClaimDaily(ctx, 42)

	var cooldown *models.DailyCooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.ErrorIs(t, err, models.ErrAlreadyClaimedToday)
	assert.Equal(t, 14*time.Hour, cooldown.Remaining)
	assert.Empty(t, bus.Events())
}

func TestDailyService_CooldownShrinksAsTimePasses(t *testing.T) {
	ctx := context.Background()
	lastClaim := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, elapsed := range []time.Duration{time.Hour, 12 * time.Hour, 23 * time.Hour} {
		now := lastClaim.Add(elapsed)
		cutoff := now.Add(-24 * time.Hour)

		mockRepo := new(MockAccountRepository)
		svc := newTestDailyService(mockRepo, newCapturingBus(), &scriptedRand{ints: []int{0}}, now)

		mockRepo.On("EnsureExists", ctx, int64(1)).Return(nil)
		mockRepo.On("ClaimDailyBonus", ctx, int64(1), int64(100), now, cutoff).
			Return(int64(0), false, nil)
		mockRepo.On("GetLastDailyClaim", ctx, int64(1)).Return(&lastClaim, nil)

		_, err := svc.ClaimDaily(ctx, 1)

		var cooldown *models.DailyCooldownError
		require.ErrorAs(t, err, &cooldown)
		assert.Equal(t, 24*time.Hour-elapsed, cooldown.Remaining)
	}
}

func TestDailyService_ClaimAfterWindowReopens(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockAccountRepository)
	bus := newCapturingBus()
	rng := &scriptedRand{ints: []int{49}}

	svc := newTestDailyService(mockRepo, bus, rng, now)

	cutoff := now.Add(-24 * time.Hour)
	mockRepo.On("EnsureExists", ctx, int64(42)).Return(nil)
	mockRepo.On("ClaimDailyBonus", ctx, int64(42), int64(149), now, cutoff).
		Return(int64(1000), true, nil)

	result, err := svc.ClaimDaily(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(149), result.Bonus)
}

func TestDailyService_RepositoryErrorPropagates(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	mockRepo := new(MockAccountRepository)
	svc := newTestDailyService(mockRepo, newCapturingBus(), &scriptedRand{ints: []int{0}}, now)

	boom := errors.New("connection refused")
	mockRepo.On("EnsureExists", ctx, int64(42)).Return(nil)
	mockRepo.On("ClaimDailyBonus", ctx, int64(42), int64(100), now, now.Add(-24*time.Hour)).
		Return(int64(0), false, boom)

	_, err := svc.ClaimDaily(ctx, 42)
	assert.ErrorIs(t, err, boom)
}
