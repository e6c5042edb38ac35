package transfer

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

func (f *Feature) handlePay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	var amount int64
	var targetUser *discordgo.User
	for _, opt := range options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			targetUser = opt.UserValue(s)
		}
	}

	if targetUser == nil {
		common.RespondWithError(s, i, "Invalid target user.")
		return
	}

	fromID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing sender Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	toID, err := strconv.ParseInt(targetUser.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing target Discord ID %s: %v", targetUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Sender account exists before any validation reports a balance
	if _, err := f.accountService.GetOrCreateAccount(ctx, fromID); err != nil {
		log.Errorf("Error ensuring sender account %d: %v", fromID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.transferService.Transfer(ctx, fromID, toID, amount, targetUser.Bot)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidTarget):
			common.RespondWithError(s, i, "You can't pay that member.")
		case errors.Is(err, models.ErrBelowMinimumTransfer):
			common.RespondWithError(s, i, fmt.Sprintf("Transfer too small: %v.", err))
		case errors.Is(err, models.ErrInsufficientBalance):
			common.RespondWithError(s, i, fmt.Sprintf("Not enough points: %v.", err))
		default:
			log.Errorf("Error transferring %d points from %d to %d: %v", amount, fromID, toID, err)
			common.RespondWithError(s, i, "Transfer failed. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("💸 %s sent **%s points** to %s. New balance: **%s points**",
		common.MentionUser(fromID),
		common.FormatPoints(result.Amount),
		common.MentionUser(result.TargetID),
		common.FormatPoints(result.NewBalance))

	if err := common.RespondWithContent(s, i, message); err != nil {
		log.Errorf("Error responding to pay command: %v", err)
	}
}
