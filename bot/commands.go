package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current points",
		},
		{
			Name:        "daily",
			Description: "Claim your daily bonus",
		},
		{
			Name:        "pay",
			Description: "Transfer points to another member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to pay",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of points",
					Required:    true,
				},
			},
		},
		{
			Name:        "casino",
			Description: "Spin the slot machine",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Stake",
					Required:    true,
				},
			},
		},
		{
			Name:        "jackpot",
			Description: "Try the jackpot multiplier",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Stake",
					Required:    true,
				},
			},
		},
		{
			Name:        "roulette",
			Description: "Pick a color and spin the wheel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "color",
					Description: "Color to bet on",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Red", Value: "red"},
						{Name: "Black", Value: "black"},
						{Name: "Green", Value: "green"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Stake",
					Required:    true,
				},
			},
		},
		{
			Name:        "dice",
			Description: "Roll two dice against the house",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Stake",
					Required:    true,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the top point holders",
		},
	}

	for _, command := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, command); err != nil {
			return fmt.Errorf("failed to register command %s: %w", command.Name, err)
		}
	}

	return nil
}
