package service

import (
	"context"
	"sync"
	"time"

	"pointsbot/config"
	"pointsbot/events"

	log "github.com/sirupsen/logrus"
)

// PresenceTracker owns the in-memory registry of members currently in voice
// and hands out the passive income: voice presence ticks, per-message rolls
// and per-reaction rewards. The registry is only ever touched through the
// tracker's methods; ledger calls happen outside the registry lock so a
// slow store call for one account never blocks join/leave handling.
type PresenceTracker struct {
	repo AccountRepository
	bus  EventPublisher
	rng  Rand
	now  func() time.Time

	interval time.Duration // reward interval, also the tick period
	ttl      time.Duration // stale session retention window
	reward   int64

	mu       sync.Mutex
	sessions map[int64]time.Time // account id -> joinedAt
}

// NewPresenceTracker creates a new presence tracker
func NewPresenceTracker(repo AccountRepository, bus EventPublisher, rng Rand) *PresenceTracker {
	cfg := config.Get()
	return &PresenceTracker{
		repo:     repo,
		bus:      bus,
		rng:      rng,
		now:      time.Now,
		interval: cfg.VoiceRewardInterval,
		ttl:      cfg.VoiceSessionTTL,
		reward:   cfg.VoiceReward,
		sessions: make(map[int64]time.Time),
	}
}

// Start runs the periodic accrual tick until the context is cancelled
func (t *PresenceTracker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		log.Infof("Presence tracker started, crediting every %v", t.interval)

		for {
			select {
			case <-ctx.Done():
				log.Info("Presence tracker shutting down...")
				return
			case <-ticker.C:
				t.tick(ctx)
			}
		}
	}()
}

// HandleVoiceJoin registers a member observed entering a voice channel
func (t *PresenceTracker) HandleVoiceJoin(discordID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[discordID]; !ok {
		t.sessions[discordID] = t.now()
	}
}

// HandleVoiceLeave removes a member that left all voice channels
func (t *PresenceTracker) HandleVoiceLeave(discordID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.sessions, discordID)
}

// SeedPresent registers members already in voice at process start
func (t *PresenceTracker) SeedPresent(discordIDs []int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for _, id := range discordIDs {
		if _, ok := t.sessions[id]; !ok {
			t.sessions[id] = now
		}
	}
}

// SessionCount reports the number of tracked voice sessions
func (t *PresenceTracker) SessionCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.sessions)
}

// tick credits every session that completed a full interval and evicts
// sessions that went unrefreshed past the retention window. Eviction is
// checked against the pre-reset joinedAt, so it self-heals from missed
// leave notifications even while credits keep flowing.
func (t *PresenceTracker) tick(ctx context.Context) {
	now := t.now()

	t.mu.Lock()
	due := make([]int64, 0, len(t.sessions))
	for id, joinedAt := range t.sessions {
		elapsed := now.Sub(joinedAt)

		if elapsed >= t.interval {
			due = append(due, id)
			t.sessions[id] = now
		}

		if elapsed >= t.ttl {
			delete(t.sessions, id)
		}
	}
	t.mu.Unlock()

	for _, id := range due {
		if err := t.creditVoice(ctx, id); err != nil {
			// Isolate per-account failures, keep crediting the rest
			log.Errorf("Failed to credit voice presence for %d: %v", id, err)
		}
	}
}

func (t *PresenceTracker) creditVoice(ctx context.Context, discordID int64) error {
	if err := t.repo.EnsureExists(ctx, discordID); err != nil {
		return err
	}
	if err := t.repo.AddPoints(ctx, discordID, t.reward); err != nil {
		return err
	}

	t.bus.Publish(ctx, events.PointsAwardedEvent{
		DiscordID: discordID,
		Amount:    t.reward,
		Reason:    events.AwardReasonVoice,
	})

	return nil
}

// HandleMessage rolls the passive message reward for a non-bot author:
// with probability 0.5, a uniform 1 to 5 points.
func (t *PresenceTracker) HandleMessage(ctx context.Context, authorID int64, isBot bool) {
	if isBot {
		return
	}

	if err := t.repo.EnsureExists(ctx, authorID); err != nil {
		log.Errorf("Failed to ensure account %d for message reward: %v", authorID, err)
		return
	}

	if t.rng.Float64() >= 0.5 {
		return
	}

	amount := int64(t.rng.Intn(5) + 1)
	if err := t.repo.AddPoints(ctx, authorID, amount); err != nil {
		log.Errorf("Failed to credit message reward for %d: %v", authorID, err)
		return
	}

	t.bus.Publish(ctx, events.PointsAwardedEvent{
		DiscordID: authorID,
		Amount:    amount,
		Reason:    events.AwardReasonMessage,
	})
}

// HandleReaction credits the reacted-to message's author with one point.
// Self-reactions and bot reactors never pay.
func (t *PresenceTracker) HandleReaction(ctx context.Context, reactorID, authorID int64, reactorIsBot bool) {
	if reactorIsBot || reactorID == authorID {
		return
	}

	if err := t.repo.EnsureExists(ctx, authorID); err != nil {
		log.Errorf("Failed to ensure account %d for reaction reward: %v", authorID, err)
		return
	}

	if err := t.repo.AddPoints(ctx, authorID, 1); err != nil {
		log.Errorf("Failed to credit reaction reward for %d: %v", authorID, err)
		return
	}

	t.bus.Publish(ctx, events.PointsAwardedEvent{
		DiscordID: authorID,
		Amount:    1,
		Reason:    events.AwardReasonReaction,
	})
}
