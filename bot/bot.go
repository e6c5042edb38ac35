package bot

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"pointsbot/bot/features/balance"
	"pointsbot/bot/features/daily"
	"pointsbot/bot/features/games"
	"pointsbot/bot/features/leaderboard"
	"pointsbot/bot/features/transfer"
	"pointsbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config  Config
	session *discordgo.Session
	tracker *service.PresenceTracker

	balanceFeature     *balance.Feature
	dailyFeature       *daily.Feature
	gamesFeature       *games.Feature
	transferFeature    *transfer.Feature
	leaderboardFeature *leaderboard.Feature
}

func New(cfg Config, accountService service.AccountService, gamesService service.GamesService, dailyService service.DailyService, transferService service.TransferService, leaderboardService service.LeaderboardService, tracker *service.PresenceTracker) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentMessageContent

	bot := &Bot{
		config:             cfg,
		session:            dg,
		tracker:            tracker,
		balanceFeature:     balance.New(accountService),
		dailyFeature:       daily.New(dailyService),
		gamesFeature:       games.New(gamesService),
		transferFeature:    transfer.New(transferService, accountService),
		leaderboardFeature: leaderboard.New(leaderboardService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.leaderboardFeature.HandleInteraction)

	// Register the passive reward event feed
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleReactionAdd)
	dg.AddHandler(bot.handleVoiceStateUpdate)
	dg.AddHandler(bot.handleGuildCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.balanceFeature.HandleCommand(s, i)
	case "daily":
		b.dailyFeature.HandleCommand(s, i)
	case "pay":
		b.transferFeature.HandleCommand(s, i)
	case "casino", "jackpot", "roulette", "dice":
		b.gamesFeature.HandleCommand(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleCommand(s, i)
	}
}

// handleMessageCreate rolls the passive message reward for every non-bot
// message
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	authorID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing message author ID %s: %v", m.Author.ID, err)
		return
	}

	b.tracker.HandleMessage(context.Background(), authorID, m.Author.Bot)
}

// handleReactionAdd credits the reacted-to message's author
func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	reactor, err := s.User(r.UserID)
	if err != nil {
		log.Errorf("Error resolving reactor %s: %v", r.UserID, err)
		return
	}

	message, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil || message.Author == nil {
		log.Errorf("Error resolving reacted-to message %s: %v", r.MessageID, err)
		return
	}

	reactorID, err := strconv.ParseInt(r.UserID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing reactor ID %s: %v", r.UserID, err)
		return
	}
	authorID, err := strconv.ParseInt(message.Author.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing author ID %s: %v", message.Author.ID, err)
		return
	}

	// The reacted-to author earns the point, bot authors excluded
	if message.Author.Bot {
		return
	}

	b.tracker.HandleReaction(context.Background(), reactorID, authorID, reactor.Bot)
}

// handleVoiceStateUpdate tracks voice channel joins and leaves
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	discordID, err := strconv.ParseInt(v.UserID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing voice user ID %s: %v", v.UserID, err)
		return
	}

	if v.ChannelID != "" {
		b.tracker.HandleVoiceJoin(discordID)
	} else {
		b.tracker.HandleVoiceLeave(discordID)
	}
}

// handleGuildCreate seeds presence sessions for members already in voice
// when the bot connects
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ids := make([]int64, 0, len(g.VoiceStates))
	for _, vs := range g.VoiceStates {
		if vs.ChannelID == "" {
			continue
		}
		id, err := strconv.ParseInt(vs.UserID, 10, 64)
		if err != nil {
			log.Errorf("Error parsing voice state user ID %s: %v", vs.UserID, err)
			continue
		}
		ids = append(ids, id)
	}

	b.tracker.SeedPresent(ids)
	log.Infof("Seeded %d voice presence sessions for guild %s", len(ids), g.ID)
}
