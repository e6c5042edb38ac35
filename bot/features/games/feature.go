package games

import (
	"github.com/bwmarrin/discordgo"

	"pointsbot/service"
)

type Feature struct {
	gamesService service.GamesService
}

func New(gamesService service.GamesService) *Feature {
	return &Feature{
		gamesService: gamesService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "casino":
		f.handleSlots(s, i)
	case "jackpot":
		f.handleJackpot(s, i)
	case "roulette":
		f.handleRoulette(s, i)
	case "dice":
		f.handleDice(s, i)
	}
}
