package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/rpgbot"
	"github.com/ellavondegurechaff/gorpg/rpgbot/config"
	"github.com/ellavondegurechaff/gorpg/rpgbot/utils"
)

var Start = discord.SlashCommandCreate{
	Name:        "start",
	Description: "⚔️ Start the game and choose your class",
}

func StartHandler(b *rpgbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		user := e.User()
		msg, err := startReply(ctx, b.Characters, user.ID, user.EffectiveName())
		if err != nil {
			slog.Error("Failed to check registration",
				slog.String("type", "cmd"),
				slog.String("user_id", user.ID.String()),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to load your character. Please try again later.")
		}
		return e.CreateMessage(msg)
	}
}

func startReply(ctx context.Context, svc characters.Service, userID snowflake.ID, username string) (discord.MessageCreate, error) {
	state, err := svc.State(ctx, userID)
	if err != nil {
		return discord.MessageCreate{}, err
	}
	if state == characters.StateRegistered {
		return WelcomeBackMessage(username), nil
	}
	return ClassSelectionMessage(userID), nil
}

// ClassSelectHandler handles the /class/{owner}/{class} buttons of the welcome message.
func ClassSelectHandler(b *rpgbot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		user := e.User()
		selection, err := selectClass(ctx, b.Characters, e.Vars["owner"], user.ID, user.EffectiveName(), e.Vars["class"])
		if err != nil {
			slog.Error("Failed to register character",
				slog.String("type", "component"),
				slog.String("user_id", user.ID.String()),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to create your character. Please try again later.")
		}

		if selection.update != nil {
			return e.UpdateMessage(*selection.update)
		}
		return e.CreateMessage(*selection.reply)
	}
}

// classSelection is the outcome of a class button press: either the welcome message is
// edited into a confirmation or the presser alone gets a reply.
type classSelection struct {
	update *discord.MessageUpdate
	reply  *discord.MessageCreate
}

func selectClass(ctx context.Context, svc characters.Service, rawOwner string, userID snowflake.ID, username string, rawClass string) (classSelection, error) {
	if owner, err := snowflake.Parse(rawOwner); err != nil || owner != userID {
		slog.Warn("Rejected class selection from another user",
			slog.String("type", "component"),
			slog.String("user_id", userID.String()),
			slog.String("owner", rawOwner))
		msg := NotYourSelectionMessage()
		return classSelection{reply: &msg}, nil
	}

	class, err := characters.ParseClass(rawClass)
	if err != nil {
		slog.Warn("Rejected class selection",
			slog.String("type", "component"),
			slog.String("user_id", userID.String()),
			slog.String("payload", rawClass))
		msg := UnknownClassMessage()
		return classSelection{reply: &msg}, nil
	}

	character, err := svc.Register(ctx, userID, username, class)
	switch {
	case errors.Is(err, characters.ErrAlreadyRegistered):
		msg := AlreadyRegisteredMessage(character)
		return classSelection{reply: &msg}, nil
	case err != nil:
		return classSelection{}, fmt.Errorf("failed to register %s: %w", class, err)
	}

	update := RegistrationCompleteUpdate(character)
	return classSelection{update: &update}, nil
}
