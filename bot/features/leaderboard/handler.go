package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pointsbot/bot/common"
	"pointsbot/models"
	"pointsbot/service"
)

const customIDPrefix = "leaderboard:"

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	view, err := f.leaderboardService.StartSession(ctx, discordID)
	if err != nil {
		log.Errorf("Error starting leaderboard session for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to load the leaderboard. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildEmbed(view), buildComponents(view)); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

// HandleInteraction consumes prev/next button presses on leaderboard messages.
// Registered as a session-wide handler, so it must ignore everything else.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, customIDPrefix) {
		return
	}

	parts := strings.Split(customID, ":")
	if len(parts) != 3 {
		log.Warnf("Malformed leaderboard custom ID %q", customID)
		return
	}
	sessionID := parts[1]
	direction := service.PageDirection(parts[2])

	actorID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		return
	}

	view, err := f.leaderboardService.Page(sessionID, actorID, direction)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotSessionOwner):
			if err := common.RespondEphemeral(s, i, "Only the member who opened this leaderboard can page it."); err != nil {
				log.Errorf("Error sending paging rejection: %v", err)
			}
		case errors.Is(err, models.ErrSessionExpired):
			f.disableExpiredMessage(s, i)
		default:
			log.Errorf("Error paging leaderboard session %s: %v", sessionID, err)
		}
		return
	}

	if err := common.UpdateComponentMessage(s, i, buildEmbed(view), buildComponents(view)); err != nil {
		log.Errorf("Error updating leaderboard message: %v", err)
	}
}

// disableExpiredMessage re-renders the message with dead buttons so the
// stale controls stop inviting clicks.
func (f *Feature) disableExpiredMessage(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil || len(i.Message.Embeds) == 0 {
		return
	}

	embed := i.Message.Embeds[0]
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Session expired. Run /leaderboard again."}

	if err := common.UpdateComponentMessage(s, i, embed, disabledComponents()); err != nil {
		log.Errorf("Error disabling expired leaderboard message: %v", err)
	}
}

func buildEmbed(view *service.LeaderboardView) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, entry := range view.Entries {
		sb.WriteString(fmt.Sprintf("**%d.** %s — %s points\n",
			entry.Rank,
			common.MentionUser(entry.DiscordID),
			common.FormatPoints(entry.Points)))
	}
	if sb.Len() == 0 {
		sb.WriteString("Nobody has any points yet.")
	}

	totalPages := (view.TotalSize + view.PageSize - 1) / view.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &discordgo.MessageEmbed{
		Title:       "⛩ Top Players",
		Description: sb.String(),
		Color:       common.ColorGold,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", view.Page+1, totalPages),
		},
	}
}

func buildComponents(view *service.LeaderboardView) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀ Prev",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPrefix + view.SessionID + ":prev",
					Disabled: !view.HasPrev(),
				},
				discordgo.Button{
					Label:    "Next ▶",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPrefix + view.SessionID + ":next",
					Disabled: !view.HasNext(),
				},
			},
		},
	}
}

func disabledComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀ Prev",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPrefix + "expired:prev",
					Disabled: true,
				},
				discordgo.Button{
					Label:    "Next ▶",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDPrefix + "expired:next",
					Disabled: true,
				},
			},
		},
	}
}
