package cmd

import (
	"context"
	"fmt"
	"time"

	"pointsbot/bot"
	"pointsbot/config"
	"pointsbot/database"
	"pointsbot/events"
	"pointsbot/repository"
	"pointsbot/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting pointsbot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	// Initialize event bus with the audit log sink
	eventBus := events.NewBus()
	subscribeAuditLog(eventBus)

	// Initialize repository and services
	accountRepo := repository.NewAccountRepository(db)
	rng := service.NewRand()

	accountService := service.NewAccountService(accountRepo)
	gamesService := service.NewGamesService(accountRepo, eventBus, rng)
	dailyService := service.NewDailyService(accountRepo, eventBus, rng)
	transferService := service.NewTransferService(accountRepo, eventBus)
	leaderboard := service.NewLeaderboardManager(accountRepo)
	tracker := service.NewPresenceTracker(accountRepo, eventBus, rng)

	// Start background workers
	tracker.Start(ctx)
	leaderboard.StartCleanup(ctx)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}
	discordBot, err := bot.New(botConfig, accountService, gamesService, dailyService, transferService, leaderboard, tracker)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give in-flight event handlers a moment before dropping the pool
	time.Sleep(1 * time.Second)

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}

// subscribeAuditLog attaches a structured-logging sink to every balance
// changing event. Nothing is persisted, this is observability only.
func subscribeAuditLog(bus *events.Bus) {
	bus.Subscribe(events.EventTypePointsAwarded, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.PointsAwardedEvent); ok {
			log.WithFields(log.Fields{
				"discordID": e.DiscordID,
				"amount":    e.Amount,
				"reason":    e.Reason,
			}).Debug("Points awarded")
		}
	})

	bus.Subscribe(events.EventTypeWagerResolved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.WagerResolvedEvent); ok {
			log.WithFields(log.Fields{
				"discordID":  e.DiscordID,
				"game":       e.Game,
				"bet":        e.Bet,
				"delta":      e.Delta,
				"newBalance": e.NewBalance,
			}).Info("Wager resolved")
		}
	})

	bus.Subscribe(events.EventTypeDailyClaimed, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.DailyClaimedEvent); ok {
			log.WithFields(log.Fields{
				"discordID": e.DiscordID,
				"bonus":     e.Bonus,
			}).Info("Daily bonus claimed")
		}
	})

	bus.Subscribe(events.EventTypeTransferCompleted, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TransferCompletedEvent); ok {
			log.WithFields(log.Fields{
				"fromID": e.FromID,
				"toID":   e.ToID,
				"amount": e.Amount,
			}).Info("Transfer completed")
		}
	})
}
