package service

import (
	"context"
	"sync"
	"time"

	"pointsbot/events"
	"pointsbot/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) EnsureExists(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetPoints(ctx context.Context, discordID int64) (int64, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) AddPoints(ctx context.Context, discordID int64, amount int64) error {
	args := m.Called(ctx, discordID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyWager(ctx context.Context, discordID int64, stake int64, delta int64) (int64, error) {
	args := m.Called(ctx, discordID, stake, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) ClaimDailyBonus(ctx context.Context, discordID int64, bonus int64, now time.Time, cutoff time.Time) (int64, bool, error) {
	args := m.Called(ctx, discordID, bonus, now, cutoff)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockAccountRepository) GetLastDailyClaim(ctx context.Context, discordID int64) (*time.Time, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockAccountRepository) TransferPoints(ctx context.Context, fromID, toID int64, amount int64) error {
	args := m.Called(ctx, fromID, toID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) GetTopAccounts(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// capturingBus records published events for assertions
type capturingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func newCapturingBus() *capturingBus {
	return &capturingBus{}
}

func (b *capturingBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, event)
}

func (b *capturingBus) Events() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]events.Event, len(b.events))
	copy(out, b.events)
	return out
}

// scriptedRand replays fixed roll sequences, cycling when exhausted
type scriptedRand struct {
	floats  []float64
	ints    []int
	floatAt int
	intAt   int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.floatAt%len(r.floats)]
	r.floatAt++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.intAt%len(r.ints)] % n
	r.intAt++
	return v
}
