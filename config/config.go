package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Economy settings
	MinimumBet      int64 // smallest stake accepted by any game
	MinimumTransfer int64 // smallest amount accepted by /pay

	// Daily bonus settings
	DailyBonusBase   int64         // guaranteed part of the bonus
	DailyBonusSpread int64         // random part, [0, spread)
	DailyCooldown    time.Duration // eligibility window between claims

	// Voice presence settings
	VoiceRewardInterval time.Duration // how often continuous presence is credited
	VoiceReward         int64         // points per credited interval
	VoiceSessionTTL     time.Duration // stale session eviction window

	// Leaderboard settings
	LeaderboardLimit    int           // snapshot size
	LeaderboardPageSize int           // entries per page
	LeaderboardLifetime time.Duration // paging session lifetime

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from a .env file (if present) and environment variables
func load() (*Config, error) {
	// Missing .env is fine, real deployments use actual environment variables
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Economy defaults
		MinimumBet:      200,
		MinimumTransfer: 200,

		DailyBonusBase:   100,
		DailyBonusSpread: 50,
		DailyCooldown:    24 * time.Hour,

		VoiceRewardInterval: time.Minute,
		VoiceReward:         10,
		VoiceSessionTTL:     time.Hour,

		LeaderboardLimit:    100,
		LeaderboardPageSize: 10,
		LeaderboardLifetime: 60 * time.Second,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if bet := os.Getenv("MINIMUM_BET"); bet != "" {
		if parsed, err := strconv.ParseInt(bet, 10, 64); err == nil {
			config.MinimumBet = parsed
		}
	}
	if transfer := os.Getenv("MINIMUM_TRANSFER"); transfer != "" {
		if parsed, err := strconv.ParseInt(transfer, 10, 64); err == nil {
			config.MinimumTransfer = parsed
		}
	}
	if reward := os.Getenv("VOICE_REWARD"); reward != "" {
		if parsed, err := strconv.ParseInt(reward, 10, 64); err == nil {
			config.VoiceReward = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
