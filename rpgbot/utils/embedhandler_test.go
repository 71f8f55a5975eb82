package utils

import (
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"

	"github.com/ellavondegurechaff/gorpg/rpgbot/config"
)

type recordingEvent struct {
	sent []discord.MessageCreate
}

func (r *recordingEvent) CreateMessage(messageCreate discord.MessageCreate, _ ...rest.RequestOpt) error {
	r.sent = append(r.sent, messageCreate)
	return nil
}

func TestResponseHandler(t *testing.T) {
	tests := []struct {
		name      string
		send      func(MessageCreator) error
		wantColor int
		wantText  string
	}{
		{
			name:      "system error",
			send:      func(e MessageCreator) error { return EH.CreateErrorEmbed(e, "store is down") },
			wantColor: config.ErrorColor,
			wantText:  "🔧 store is down",
		},
		{
			name:      "not found",
			send:      func(e MessageCreator) error { return EH.CreateNotFoundError(e, "no such class") },
			wantColor: config.InfoColor,
			wantText:  "❌ no such class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &recordingEvent{}
			if err := tt.send(event); err != nil {
				t.Fatalf("send: %v", err)
			}
			if len(event.sent) != 1 {
				t.Fatalf("sent %d messages, want 1", len(event.sent))
			}
			msg := event.sent[0]
			if msg.Flags != discord.MessageFlagEphemeral {
				t.Error("error replies must be ephemeral")
			}
			if embed := msg.Embeds[0]; embed.Color != tt.wantColor || !strings.HasPrefix(embed.Description, tt.wantText) {
				t.Errorf("embed = %q color %#x", embed.Description, embed.Color)
			}
		})
	}
}
