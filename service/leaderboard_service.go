package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pointsbot/config"
	"pointsbot/models"

	"github.com/google/uuid"
)

// PageDirection is a leaderboard paging action
type PageDirection string

const (
	PageNext PageDirection = "next"
	PagePrev PageDirection = "prev"
)

// LeaderboardView is the rendered state of a paging session
type LeaderboardView struct {
	SessionID   string
	RequesterID int64
	Page        int
	PageSize    int
	TotalSize   int
	Entries     []*models.LeaderboardEntry // the current page's rows
	ExpiresAt   time.Time
}

// HasNext reports whether another page follows the current one
func (v *LeaderboardView) HasNext() bool {
	return (v.Page+1)*v.PageSize < v.TotalSize
}

// HasPrev reports whether the current page is not the first
func (v *LeaderboardView) HasPrev() bool {
	return v.Page > 0
}

// leaderboardSession holds an immutable ranked snapshot captured at
// invocation time, plus the paging cursor. Only the requester may page;
// the session turns inert at expiresAt.
type leaderboardSession struct {
	id          string
	requesterID int64
	snapshot    []*models.LeaderboardEntry
	page        int
	expiresAt   time.Time
}

type LeaderboardManager struct {
	repo AccountRepository
	now  func() time.Time

	limit    int
	pageSize int
	lifetime time.Duration

	mu       sync.Mutex
	sessions map[string]*leaderboardSession
}

// NewLeaderboardManager creates a new leaderboard session controller.
// Call StartCleanup to sweep expired sessions in the background.
func NewLeaderboardManager(repo AccountRepository) *LeaderboardManager {
	cfg := config.Get()
	return &LeaderboardManager{
		repo:     repo,
		now:      time.Now,
		limit:    cfg.LeaderboardLimit,
		pageSize: cfg.LeaderboardPageSize,
		lifetime: cfg.LeaderboardLifetime,
		sessions: make(map[string]*leaderboardSession),
	}
}

// StartSession captures the ranked snapshot once and opens a paging session
// scoped to the requester
func (s *LeaderboardManager) StartSession(ctx context.Context, requesterID int64) (*LeaderboardView, error) {
	snapshot, err := s.repo.GetTopAccounts(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to capture leaderboard snapshot: %w", err)
	}

	session := &leaderboardSession{
		id:          uuid.NewString(),
		requesterID: requesterID,
		snapshot:    snapshot,
		page:        0,
		expiresAt:   s.now().Add(s.lifetime),
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	return s.render(session), nil
}

// Page applies a paging action. Only the original requester may page, and
// only while the session is alive; everything else is rejected without
// mutating the cursor.
func (s *LeaderboardManager) Page(sessionID string, actorID int64, direction PageDirection) (*LeaderboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionExpired
	}

	if s.now().After(session.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, models.ErrSessionExpired
	}

	if actorID != session.requesterID {
		return nil, models.ErrNotSessionOwner
	}

	switch direction {
	case PageNext:
		if (session.page+1)*s.pageSize < len(session.snapshot) {
			session.page++
		}
	case PagePrev:
		if session.page > 0 {
			session.page--
		}
	}

	return s.render(session), nil
}

// render slices the snapshot into the session's current page
func (s *LeaderboardManager) render(session *leaderboardSession) *LeaderboardView {
	start := session.page * s.pageSize
	end := start + s.pageSize
	if start > len(session.snapshot) {
		start = len(session.snapshot)
	}
	if end > len(session.snapshot) {
		end = len(session.snapshot)
	}

	return &LeaderboardView{
		SessionID:   session.id,
		RequesterID: session.requesterID,
		Page:        session.page,
		PageSize:    s.pageSize,
		TotalSize:   len(session.snapshot),
		Entries:     session.snapshot[start:end],
		ExpiresAt:   session.expiresAt,
	}
}

// StartCleanup sweeps expired sessions periodically until the context is
// cancelled
func (s *LeaderboardManager) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.lifetime)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupSessions()
			}
		}
	}()
}

func (s *LeaderboardManager) cleanupSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, session := range s.sessions {
		if now.After(session.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
