package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Help = discord.SlashCommandCreate{
	Name:        "help",
	Description: "📖 Display all available commands",
}

func HelpHandler(e *handler.CommandEvent) error {
	return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{HelpEmbed()}})
}
