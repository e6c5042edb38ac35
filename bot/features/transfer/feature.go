package transfer

import (
	"github.com/bwmarrin/discordgo"

	"pointsbot/service"
)

type Feature struct {
	transferService service.TransferService
	accountService  service.AccountService
}

func New(transferService service.TransferService, accountService service.AccountService) *Feature {
	return &Feature{
		transferService: transferService,
		accountService:  accountService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handlePay(s, i)
}
