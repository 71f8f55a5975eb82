package commands

import (
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/gorpg/rpgbot"
	"github.com/ellavondegurechaff/gorpg/rpgbot/handlers"
)

// Commands are synced with --sync-commands. /battle is announced in the help text only.
var Commands = []discord.ApplicationCommandCreate{
	Start,
	Profile,
	Help,
	Classes,
}

// NewRouter binds every command, component and autocomplete route to b.
func NewRouter(b *rpgbot.Bot) *handler.Mux {
	slow := time.Duration(b.Cfg.Bot.SlowCommandMillis) * time.Millisecond

	h := handler.New()
	h.Command("/start", handlers.WrapWithLogging("start", slow, StartHandler(b)))
	h.Command("/profile", handlers.WrapWithLogging("profile", slow, ProfileHandler(b)))
	h.Command("/help", handlers.WrapWithLogging("help", slow, HelpHandler))
	h.Command("/classes", handlers.WrapWithLogging("classes", slow, ClassesHandler(b)))
	h.Autocomplete("/classes", ClassesAutocompleteHandler)
	h.Component("/class/{owner}/{class}", handlers.WrapComponentWithLogging("class-select", slow, ClassSelectHandler(b)))
	return h
}
