package games

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"pointsbot/bot/common"
	"pointsbot/models"
)

func buildResultEmbed(result *models.WagerResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       gameTitle(result.Game),
		Description: gameDescription(result),
		Color:       resultColor(result),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Bet",
				Value:  common.FormatPoints(result.Bet),
				Inline: true,
			},
			{
				Name:   "Net",
				Value:  formatDelta(result.Delta),
				Inline: true,
			},
			{
				Name:   "Balance",
				Value:  common.FormatPoints(result.NewBalance),
				Inline: true,
			},
		},
	}
	return embed
}

func gameTitle(game models.GameKind) string {
	switch game {
	case models.GameSlots:
		return "🎰 Casino"
	case models.GameJackpot:
		return "⚡ Jackpot"
	case models.GameRoulette:
		return "🎡 Roulette"
	case models.GameDice:
		return "🎲 Dice"
	}
	return "Wager"
}

func gameDescription(result *models.WagerResult) string {
	var line string
	switch result.Game {
	case models.GameSlots:
		line = fmt.Sprintf("[ %s ]", strings.Join(result.Symbols, " | "))
	case models.GameJackpot:
		line = fmt.Sprintf("The wheel stops at **x%g**", result.Multiplier)
	case models.GameRoulette:
		line = fmt.Sprintf("You bet on %s, the ball landed on **%s**",
			colorLabel(result.ChosenColor), colorLabel(result.RolledColor))
	case models.GameDice:
		line = fmt.Sprintf("You rolled **%d** and **%d** for a total of **%d**",
			result.DiceRolls[0], result.DiceRolls[1], result.DiceSum)
	}

	switch {
	case result.Won():
		return line + "\n\nYou won! 🎉"
	case result.Push():
		return line + "\n\nPush. Your stake is returned."
	default:
		return line + "\n\nYou lost. 💀"
	}
}

func colorLabel(color models.RouletteColor) string {
	switch color {
	case models.RouletteRed:
		return "🔴 red"
	case models.RouletteBlack:
		return "⚫ black"
	case models.RouletteGreen:
		return "🟢 green"
	}
	return string(color)
}

func resultColor(result *models.WagerResult) int {
	switch {
	case result.Won():
		return common.ColorWin
	case result.Push():
		return common.ColorPush
	default:
		return common.ColorLoss
	}
}

func formatDelta(delta int64) string {
	if delta > 0 {
		return "+" + common.FormatPoints(delta)
	}
	return common.FormatPoints(delta)
}
