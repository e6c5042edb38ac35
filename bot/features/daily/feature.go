package daily

import (
	"github.com/bwmarrin/discordgo"

	"pointsbot/service"
)

type Feature struct {
	dailyService service.DailyService
}

func New(dailyService service.DailyService) *Feature {
	return &Feature{
		dailyService: dailyService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleDaily(s, i)
}
