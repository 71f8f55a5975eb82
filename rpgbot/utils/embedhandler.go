package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"

	"github.com/ellavondegurechaff/gorpg/rpgbot/config"
)

// MessageCreator is satisfied by both command and component events.
type MessageCreator interface {
	CreateMessage(messageCreate discord.MessageCreate, opts ...rest.RequestOpt) error
}

// ResponseHandler provides standardized responses for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

type ErrorType int

const (
	// UserError - bad input, an unknown class, a command used too early
	UserError ErrorType = iota
	// SystemError - store or platform failures
	SystemError
	// NotFoundError - the requested character does not exist
	NotFoundError
	// BusinessLogicError - game rule violations such as registering twice
	BusinessLogicError
)

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "❌"
	case BusinessLogicError:
		return "ℹ️"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

// ErrorMessage builds an ephemeral embed for errorType.
func ErrorMessage(errorType ErrorType, message string) discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: getErrorPrefix(errorType) + " " + message,
			Color:       getErrorColor(errorType),
		}},
		Flags: discord.MessageFlagEphemeral,
	}
}

func (h *ResponseHandler) CreateClassifiedError(event MessageCreator, errorType ErrorType, message string) error {
	return event.CreateMessage(ErrorMessage(errorType, message))
}

func (h *ResponseHandler) CreateErrorEmbed(event MessageCreator, message string) error {
	return h.CreateClassifiedError(event, SystemError, message)
}

func (h *ResponseHandler) CreateNotFoundError(event MessageCreator, message string) error {
	return h.CreateClassifiedError(event, NotFoundError, message)
}
