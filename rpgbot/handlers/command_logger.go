package handlers

import (
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

// DefaultSlowThreshold is used when a wrapper is given a non-positive threshold.
const DefaultSlowThreshold = 2 * time.Second

// WrapWithLogging wraps a command handler with logging functionality.
// The handler runs to completion on the calling goroutine; slow runs are only reported.
func WrapWithLogging(name string, slow time.Duration, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		user := e.User()

		slog.Debug("Command started",
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.String("guild_id", guildID(e.GuildID())),
			slog.String("channel_id", e.ChannelID().String()),
		)

		err := h(e)
		logCompletion("cmd", "Command", name, user, slow, time.Since(start), err)
		return err
	}
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, slow time.Duration, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		start := time.Now()
		user := e.User()

		slog.Debug("Component interaction started",
			slog.String("type", "component"),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.String("custom_id", e.Data.CustomID()),
		)

		err := h(e)
		logCompletion("component", "Component interaction", name, user, slow, time.Since(start), err)
		return err
	}
}

func logCompletion(logType, label, name string, user discord.User, slow, took time.Duration, err error) {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}

	attrs := []any{
		slog.String("type", logType),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
		slog.Duration("took", took),
	}

	switch {
	case err != nil:
		slog.Error(label+" failed", append(attrs,
			slog.Any("error", err),
			slog.String("status", "failed"),
		)...)
	case took > slow:
		slog.Warn(label+" executed slowly", append(attrs,
			slog.String("status", "slow"),
		)...)
	default:
		slog.Info(label+" completed", append(attrs,
			slog.String("status", "success"),
		)...)
	}
}

func guildID(id *snowflake.ID) string {
	if id == nil {
		return "dm"
	}
	return id.String()
}
