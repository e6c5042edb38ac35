package games

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/common"
	"pointsbot/models"
)

type playFunc func(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error)

func (f *Feature) handleSlots(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.play(s, i, f.gamesService.PlaySlots)
}

func (f *Feature) handleJackpot(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.play(s, i, f.gamesService.PlayJackpot)
}

func (f *Feature) handleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.play(s, i, f.gamesService.PlayDice)
}

func (f *Feature) handleRoulette(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var color models.RouletteColor
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "color" {
			color = models.RouletteColor(opt.StringValue())
		}
	}

	switch color {
	case models.RouletteRed, models.RouletteBlack, models.RouletteGreen:
	default:
		common.RespondWithError(s, i, "Pick red, black or green.")
		return
	}

	f.play(s, i, func(ctx context.Context, discordID int64, bet int64) (*models.WagerResult, error) {
		return f.gamesService.PlayRoulette(ctx, discordID, color, bet)
	})
}

func (f *Feature) play(s *discordgo.Session, i *discordgo.InteractionCreate, fn playFunc) {
	ctx := context.Background()

	var bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			bet = opt.IntValue()
		}
	}

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := fn(ctx, discordID, bet)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBelowMinimumStake):
			common.RespondWithError(s, i, fmt.Sprintf("Bet too small: %v.", err))
		case errors.Is(err, models.ErrInsufficientBalance):
			common.RespondWithError(s, i, fmt.Sprintf("Not enough points: %v.", err))
		default:
			log.Errorf("Error resolving wager for %d: %v", discordID, err)
			common.RespondWithError(s, i, "Unable to place bet. Please try again.")
		}
		return
	}

	if err := common.RespondWithEmbed(s, i, buildResultEmbed(result), nil); err != nil {
		log.Errorf("Error responding to %s command: %v", result.Game, err)
	}
}
