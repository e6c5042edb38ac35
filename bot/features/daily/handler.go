package daily

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

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.dailyService.ClaimDaily(ctx, discordID)
	if err != nil {
		var cooldown *models.DailyCooldownError
		if errors.As(err, &cooldown) {
			hours, minutes := cooldown.HoursMinutes()
			common.RespondWithError(s, i, fmt.Sprintf("Already claimed. Come back in %s.", common.FormatCooldown(hours, minutes)))
			return
		}

		log.Errorf("Error claiming daily bonus for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to claim daily bonus. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Daily Bonus",
		Description: fmt.Sprintf("+%s points! ✨", common.FormatPoints(result.Bonus)),
		Color:       common.ColorBonus,
	}

	if err := common.RespondWithEmbed(s, i, embed, nil); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}
