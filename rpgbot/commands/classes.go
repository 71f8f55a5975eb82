package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/sahilm/fuzzy"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/rpgbot"
	"github.com/ellavondegurechaff/gorpg/rpgbot/config"
	"github.com/ellavondegurechaff/gorpg/rpgbot/utils"
)

var Classes = discord.SlashCommandCreate{
	Name:        "classes",
	Description: "📜 Browse the character classes",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Show a single class",
			Required:     false,
			Autocomplete: true,
		},
	},
}

func ClassesHandler(b *rpgbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if name, ok := e.SlashCommandInteractionData().OptString("name"); ok && strings.TrimSpace(name) != "" {
			class, err := characters.ParseClass(name)
			if err != nil {
				return utils.EH.CreateNotFoundError(e, fmt.Sprintf("Unknown class %q. Try /classes without a name to browse them all.", name))
			}
			return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{ClassEmbed(class.Info())}})
		}

		catalog := characters.Classes()
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				fillClassEmbed(embed, catalog[page])
				embed.SetFooter(fmt.Sprintf("Class %d/%d • pick one with /start", page+1, len(catalog)), "")
			},
			Pages:      len(catalog),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func ClassesAutocompleteHandler(e *handler.AutocompleteEvent) error {
	focused := e.Data.Focused()
	if focused.Name != "name" {
		return nil
	}

	query := ""
	if focused.Value != nil {
		if err := json.Unmarshal(focused.Value, &query); err != nil {
			slog.Error("Failed to unmarshal focused.Value",
				slog.String("type", "cmd"),
				slog.Any("error", err))
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}
	}
	return e.AutocompleteResult(classSuggestions(query))
}

// classSource implements fuzzy.Source over the catalog names
type classSource []characters.ClassInfo

func (s classSource) String(i int) string {
	return strings.ToLower(s[i].Name)
}

func (s classSource) Len() int {
	return len(s)
}

func classSuggestions(query string) []discord.AutocompleteChoice {
	catalog := characters.Classes()
	query = strings.ToLower(strings.TrimSpace(query))

	var infos []characters.ClassInfo
	if query == "" {
		infos = catalog
	} else {
		for _, match := range fuzzy.FindFrom(query, classSource(catalog)) {
			infos = append(infos, catalog[match.Index])
		}
	}

	choices := make([]discord.AutocompleteChoice, 0, min(len(infos), config.AutocompleteLimit))
	for _, info := range infos {
		if len(choices) == config.AutocompleteLimit {
			break
		}
		choices = append(choices, discord.AutocompleteChoiceString{
			Name:  info.Label(),
			Value: info.Class.String(),
		})
	}
	return choices
}
