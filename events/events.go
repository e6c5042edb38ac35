package events

import (
	"context"
	"sync"

	"pointsbot/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePointsAwarded     EventType = "points_awarded"
	EventTypeWagerResolved     EventType = "wager_resolved"
	EventTypeDailyClaimed      EventType = "daily_claimed"
	EventTypeTransferCompleted EventType = "transfer_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// AwardReason names the income path that produced a passive reward
type AwardReason string

const (
	AwardReasonMessage  AwardReason = "message"
	AwardReasonReaction AwardReason = "reaction"
	AwardReasonVoice    AwardReason = "voice"
)

// PointsAwardedEvent represents a passive income credit
type PointsAwardedEvent struct {
	DiscordID int64
	Amount    int64
	Reason    AwardReason
}

func (e PointsAwardedEvent) Type() EventType {
	return EventTypePointsAwarded
}

// WagerResolvedEvent represents a settled wager
type WagerResolvedEvent struct {
	DiscordID  int64
	Game       models.GameKind
	Bet        int64
	Delta      int64
	NewBalance int64
}

func (e WagerResolvedEvent) Type() EventType {
	return EventTypeWagerResolved
}

// DailyClaimedEvent represents a successful daily bonus claim
type DailyClaimedEvent struct {
	DiscordID  int64
	Bonus      int64
	NewBalance int64
}

func (e DailyClaimedEvent) Type() EventType {
	return EventTypeDailyClaimed
}

// TransferCompletedEvent represents a completed member-to-member transfer
type TransferCompletedEvent struct {
	FromID int64
	ToID   int64
	Amount int64
}

func (e TransferCompletedEvent) Type() EventType {
	return EventTypeTransferCompleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish dispatches an event to all registered handlers.
// Handlers run asynchronously so a slow subscriber never blocks the
// operation that emitted the event.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
