package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointsbot/events"
)

// testClock is a hand-advanced clock for driving tracker ticks
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time          { return c.current }
func (c *testClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestTracker(repo AccountRepository, bus EventPublisher, rng Rand, clock *testClock) *PresenceTracker {
	return &PresenceTracker{
		repo:     repo,
		bus:      bus,
		rng:      rng,
		now:      clock.Now,
		interval: time.Minute,
		ttl:      time.Hour,
		reward:   10,
		sessions: make(map[int64]time.Time),
	}
}

func TestPresenceTracker_CreditsAfterFullInterval(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	bus := newCapturingBus()
	tracker := newTestTracker(mockRepo, bus, &scriptedRand{}, clock)

	tracker.HandleVoiceJoin(100)

	// Half an interval in: nothing to credit yet
	clock.Advance(30 * time.Second)
	tracker.tick(ctx)
	mockRepo.AssertNotCalled(t, "AddPoints")

	mockRepo.On("EnsureExists", ctx, int64(100)).Return(nil)
	mockRepo.On("AddPoints", ctx, int64(100), int64(10)).Return(nil)

	clock.Advance(30 * time.Second)
	tracker.tick(ctx)

	mockRepo.AssertExpectations(t)

	published := bus.Events()
	require.Len(t, published, 1)
	award := published[0].(events.PointsAwardedEvent)
	assert.Equal(t, events.AwardReasonVoice, award.Reason)
	assert.Equal(t, int64(10), award.Amount)
}

func TestPresenceTracker_IntervalResetsAfterCredit(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	tracker := newTestTracker(mockRepo, newCapturingBus(), &scriptedRand{}, clock)

	tracker.HandleVoiceJoin(100)

	mockRepo.On("EnsureExists", ctx, int64(100)).Return(nil)
	mockRepo.On("AddPoints", ctx, int64(100), int64(10)).Return(nil).Times(2)

	clock.Advance(time.Minute)
	tracker.tick(ctx)

	// The interval restarts at the credit, not at the original join
	clock.Advance(30 * time.Second)
	tracker.tick(ctx)

	clock.Advance(30 * time.Second)
	tracker.tick(ctx)

	mockRepo.AssertExpectations(t)
}

func TestPresenceTracker_LeaveStopsCrediting(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	tracker := newTestTracker(mockRepo, newCapturingBus(), &scriptedRand{}, clock)

	tracker.HandleVoiceJoin(100)
	tracker.HandleVoiceLeave(100)
	assert.Equal(t, 0, tracker.SessionCount())

	clock.Advance(2 * time.Minute)
	tracker.tick(ctx)

	mockRepo.AssertNotCalled(t, "AddPoints")
}

func TestPresenceTracker_RejoinDoesNotResetClock(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	tracker := newTestTracker(mockRepo, newCapturingBus(), &scriptedRand{}, clock)

	tracker.HandleVoiceJoin(100)
	clock.Advance(45 * time.Second)
	// Duplicate join events keep the original joinedAt
	tracker.HandleVoiceJoin(100)

	mockRepo.On("EnsureExists", ctx, int64(100)).Return(nil)
	mockRepo.On("AddPoints", ctx, int64(100), int64(10)).Return(nil)

	clock.Advance(15 * time.Second)
	tracker.tick(ctx)

	mockRepo.AssertExpectations(t)
}

func TestPresenceTracker_EvictsStaleSessions(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	tracker := newTestTracker(mockRepo, newCapturingBus(), &scriptedRand{}, clock)

	tracker.HandleVoiceJoin(100)

	// A session that goes a full retention window without a tick gets one
	// final credit and is dropped from the registry
	mockRepo.On("EnsureExists", ctx, int64(100)).Return(nil)
	mockRepo.On("AddPoints", ctx, int64(100), int64(10)).Return(nil).Once()

	clock.Advance(time.Hour)
	tracker.tick(ctx)

	assert.Equal(t, 0, tracker.SessionCount())

	clock.Advance(time.Minute)
	tracker.tick(ctx)

	mockRepo.AssertExpectations(t)
}

func TestPresenceTracker_SeedPresent(t *testing.T) {
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	tracker := newTestTracker(new(MockAccountRepository), newCapturingBus(), &scriptedRand{}, clock)

	tracker.SeedPresent([]int64{1, 2, 3})
	assert.Equal(t, 3, tracker.SessionCount())

	// Seeding never clobbers an existing session
	tracker.SeedPresent([]int64{2, 4})
	assert.Equal(t, 4, tracker.SessionCount())
}

func TestPresenceTracker_CreditFailureIsolatedPerAccount(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	tracker := newTestTracker(mockRepo, newCapturingBus(), &scriptedRand{}, clock)

	tracker.HandleVoiceJoin(100)
	tracker.HandleVoiceJoin(200)

	mockRepo.On("EnsureExists", ctx, int64(100)).Return(errors.New("connection refused"))
	mockRepo.On("EnsureExists", ctx, int64(200)).Return(nil)
	mockRepo.On("AddPoints", ctx, int64(200), int64(10)).Return(nil)

	clock.Advance(time.Minute)
	tracker.tick(ctx)

	// The healthy account still gets credited
	mockRepo.AssertExpectations(t)
	assert.Equal(t, 2, tracker.SessionCount())
}

func TestPresenceTracker_MessageRewardRollsProbability(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Now()}

	mockRepo := new(MockAccountRepository)
	bus := newCapturingBus()
	// First roll passes the 0.5 gate, amount draw lands on 3
	rng := &scriptedRand{floats: []float64{0.2}, ints: []int{2}}
	tracker := newTestTracker(mockRepo, bus, rng, clock)

	mockRepo.On("EnsureExists", ctx, int64(100)).Return(nil)
	mockRepo.On("AddPoints", ctx, int64(100), int64(3)).Return(nil)

	tracker.HandleMessage(ctx, 100, false)

	mockRepo.AssertExpectations(t)

	published := bus.Events()
	require.Len(t, published, 1)
	award := published[0].(events.PointsAwardedEvent)
	assert.Equal(t, events.AwardReasonMessage, award.Reason)
	assert.Equal(t, int64(3), award.Amount)
}

func TestPresenceTracker_MessageRewardFailedRoll(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Now()}

	mockRepo := new(MockAccountRepository)
	rng := &scriptedRand{floats: []float64{0.7}}
	tracker := newTestTracker(mockRepo, newCapturingBus(), rng, clock)

	mockRepo.On("EnsureExists", ctx, int64(100)).Return(nil)

	tracker.HandleMessage(ctx, 100, false)

	// The account is registered but no points flow on a failed roll
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "AddPoints")
}

func TestPresenceTracker_MessageFromBotIgnored(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Now()}

	mockRepo := new(MockAccountRepository)
	tracker := newTestTracker(mockRepo, newCapturingBus(), &scriptedRand{floats: []float64{0.0}}, clock)

	tracker.HandleMessage(ctx, 100, true)

	mockRepo.AssertNotCalled(t, "EnsureExists")
	mockRepo.AssertNotCalled(t, "AddPoints")
}

func TestPresenceTracker_ReactionCreditsAuthor(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Now()}

	mockRepo := new(MockAccountRepository)
	bus := newCapturingBus()
	tracker := newTestTracker(mockRepo, bus, &scriptedRand{}, clock)

	mockRepo.On("EnsureExists", ctx, int64(200)).Return(nil)
	mockRepo.On("AddPoints", ctx, int64(200), int64(1)).Return(nil)

	tracker.HandleReaction(ctx, 100, 200, false)

	mockRepo.AssertExpectations(t)

	published := bus.Events()
	require.Len(t, published, 1)
	award := published[0].(events.PointsAwardedEvent)
	assert.Equal(t, events.AwardReasonReaction, award.Reason)
	assert.Equal(t, int64(200), award.DiscordID)
}

func TestPresenceTracker_SelfAndBotReactionsIgnored(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Now()}

	mockRepo := new(MockAccountRepository)
	tracker := newTestTracker(mockRepo, newCapturingBus(), &scriptedRand{}, clock)

	tracker.HandleReaction(ctx, 100, 100, false) // self-reaction
	tracker.HandleReaction(ctx, 100, 200, true)  // bot reactor

	mockRepo.AssertNotCalled(t, "AddPoints")
}
