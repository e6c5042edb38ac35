package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointsbot/models"
)

func makeEntries(n int) []*models.LeaderboardEntry {
	entries := make([]*models.LeaderboardEntry, n)
	for i := range entries {
		entries[i] = &models.LeaderboardEntry{
			Rank:      i + 1,
			DiscordID: int64(1000 + i),
			Points:    int64((n - i) * 100),
		}
	}
	return entries
}

func newTestLeaderboard(repo AccountRepository, clock *testClock) *LeaderboardManager {
	return &LeaderboardManager{
		repo:     repo,
		now:      clock.Now,
		limit:    100,
		pageSize: 10,
		lifetime: time.Minute,
		sessions: make(map[string]*leaderboardSession),
	}
}

func TestLeaderboard_StartSessionFirstPage(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetTopAccounts", ctx, 100).Return(makeEntries(25), nil)

	manager := newTestLeaderboard(mockRepo, clock)

	view, err := manager.StartSession(ctx, 42)
	require.NoError(t, err)

	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, int64(42), view.RequesterID)
	assert.Equal(t, 0, view.Page)
	assert.Equal(t, 25, view.TotalSize)
	require.Len(t, view.Entries, 10)
	assert.Equal(t, 1, view.Entries[0].Rank)
	assert.False(t, view.HasPrev())
	assert.True(t, view.HasNext())
}

func TestLeaderboard_PagingWalksAndClamps(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetTopAccounts", ctx, 100).Return(makeEntries(25), nil)

	manager := newTestLeaderboard(mockRepo, clock)

	view, err := manager.StartSession(ctx, 42)
	require.NoError(t, err)

	// Prev on the first page stays put
	view, err = manager.Page(view.SessionID, 42, PagePrev)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Page)

	view, err = manager.Page(view.SessionID, 42, PageNext)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 11, view.Entries[0].Rank)

	view, err = manager.Page(view.SessionID, 42, PageNext)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page)
	require.Len(t, view.Entries, 5) // 25 entries, last page is short
	assert.False(t, view.HasNext())

	// Next on the last page stays put
	view, err = manager.Page(view.SessionID, 42, PageNext)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page)

	view, err = manager.Page(view.SessionID, 42, PagePrev)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
}

func TestLeaderboard_OnlyRequesterMayPage(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetTopAccounts", ctx, 100).Return(makeEntries(25), nil)

	manager := newTestLeaderboard(mockRepo, clock)

	view, err := manager.StartSession(ctx, 42)
	require.NoError(t, err)

	_, err = manager.Page(view.SessionID, 99, PageNext)
	assert.ErrorIs(t, err, models.ErrNotSessionOwner)

	// The rejection left the cursor untouched
	view, err = manager.Page(view.SessionID, 42, PageNext)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
}

func TestLeaderboard_SessionExpires(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetTopAccounts", ctx, 100).Return(makeEntries(25), nil)

	manager := newTestLeaderboard(mockRepo, clock)

	view, err := manager.StartSession(ctx, 42)
	require.NoError(t, err)

	clock.Advance(61 * time.Second)

	_, err = manager.Page(view.SessionID, 42, PageNext)
	assert.ErrorIs(t, err, models.ErrSessionExpired)

	// The expired session is gone, a second attempt fails the same way
	_, err = manager.Page(view.SessionID, 42, PageNext)
	assert.ErrorIs(t, err, models.ErrSessionExpired)
}

func TestLeaderboard_UnknownSession(t *testing.T) {
	clock := &testClock{current: time.Now()}
	manager := newTestLeaderboard(new(MockAccountRepository), clock)

	_, err := manager.Page("no-such-session", 42, PageNext)
	assert.ErrorIs(t, err, models.ErrSessionExpired)
}

func TestLeaderboard_SnapshotIsStable(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetTopAccounts", ctx, 100).Return(makeEntries(25), nil).Once()

	manager := newTestLeaderboard(mockRepo, clock)

	view, err := manager.StartSession(ctx, 42)
	require.NoError(t, err)

	// Paging never re-queries the store
	for i := 0; i < 5; i++ {
		_, err = manager.Page(view.SessionID, 42, PageNext)
		require.NoError(t, err)
	}

	mockRepo.AssertExpectations(t)
}

func TestLeaderboard_EmptySnapshot(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Now()}

	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetTopAccounts", ctx, 100).Return([]*models.LeaderboardEntry{}, nil)

	manager := newTestLeaderboard(mockRepo, clock)

	view, err := manager.StartSession(ctx, 42)
	require.NoError(t, err)

	assert.Empty(t, view.Entries)
	assert.False(t, view.HasNext())
	assert.False(t, view.HasPrev())
}

func TestLeaderboard_CleanupSweepsExpired(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetTopAccounts", ctx, 100).Return(makeEntries(5), nil)

	manager := newTestLeaderboard(mockRepo, clock)

	var ids []string
	for i := 0; i < 3; i++ {
		view, err := manager.StartSession(ctx, int64(i))
		require.NoError(t, err)
		ids = append(ids, view.SessionID)
	}

	clock.Advance(2 * time.Minute)
	manager.cleanupSessions()

	for _, id := range ids {
		_, err := manager.Page(id, 0, PageNext)
		assert.ErrorIs(t, err, models.ErrSessionExpired, fmt.Sprintf("session %s should be swept", id))
	}
}
