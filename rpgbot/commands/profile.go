package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/rpgbot"
	"github.com/ellavondegurechaff/gorpg/rpgbot/config"
	"github.com/ellavondegurechaff/gorpg/rpgbot/utils"
)

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "👤 View your character",
}

func ProfileHandler(b *rpgbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		user := e.User()
		msg, character, err := profileReply(ctx, b.Characters, user.ID)
		if err != nil {
			slog.Error("Failed to get character",
				slog.String("type", "cmd"),
				slog.String("user_id", user.ID.String()),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to get your profile. Please try again later.")
		}

		if character == nil || b.ProfileImages == nil {
			return e.CreateMessage(msg)
		}
		return sendProfileCard(e, b, character)
	}
}

// profileReply returns the reply for /profile. The character is nil for an unregistered user.
func profileReply(ctx context.Context, svc characters.Service, userID snowflake.ID) (discord.MessageCreate, *characters.Character, error) {
	character, err := svc.Profile(ctx, userID)
	if errors.Is(err, characters.ErrNotRegistered) {
		return NotRegisteredMessage(), nil, nil
	}
	if err != nil {
		return discord.MessageCreate{}, nil, err
	}
	return discord.MessageCreate{Embeds: []discord.Embed{ProfileEmbed(character)}}, character, nil
}

// sendProfileCard defers the reply while the card renders. A failed render still answers with the embed.
func sendProfileCard(e *handler.CommandEvent, b *rpgbot.Bot, character *characters.Character) error {
	if err := e.DeferCreateMessage(false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(b.Cfg.Profile.RenderTimeoutSeconds)*time.Second)
	defer cancel()

	embed := ProfileEmbed(character)
	update := discord.MessageUpdate{}

	imageBytes, err := b.ProfileImages.GenerateProfileImage(ctx, character)
	if err != nil {
		slog.Warn("Profile card unavailable, sending embed only",
			slog.String("type", "cmd"),
			slog.String("user_id", character.UserID.String()),
			slog.Any("error", err))
	} else {
		name := fmt.Sprintf("profile_%s.png", character.UserID)
		embed.Image = &discord.EmbedResource{URL: "attachment://" + name}
		update.Files = []*discord.File{{
			Name:        name,
			Description: fmt.Sprintf("%s's character card", character.Username),
			Reader:      bytes.NewReader(imageBytes),
		}}
	}
	update.Embeds = &[]discord.Embed{embed}

	_, err = e.UpdateInteractionResponse(update)
	return err
}
