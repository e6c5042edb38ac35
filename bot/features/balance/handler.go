package balance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := f.accountService.GetOrCreateAccount(ctx, discordID)
	if err != nil {
		log.Errorf("Error getting account %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⛃ Balance",
		Description: fmt.Sprintf("You have **%s points**", common.FormatPoints(account.Points)),
		Color:       common.ColorInfo,
	}

	if err := common.RespondWithEmbed(s, i, embed, nil); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}
