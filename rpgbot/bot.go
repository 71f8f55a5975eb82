package rpgbot

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/httpserver"
	"github.com/disgoorg/paginator"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/rpgbot/services"
)

func init() {
	httpserver.Verify = func(publicKey httpserver.PublicKey, message []byte, sig []byte) bool {
		return ed25519.Verify(ed25519.PublicKey(publicKey), message, sig)
	}
}

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

// Bot is the application context handed to every handler and to the status server.
type Bot struct {
	Cfg           Config
	Client        bot.Client
	Paginator     *paginator.Manager
	Version       string
	Commit        string
	Storage       *Storage
	Characters    characters.Service
	ProfileImages *services.ProfileImageService
}

// SetupBot builds the disgo client. In gateway mode the client gets a gateway with the
// guilds intent; in webhook mode it has none and events arrive through InteractionsHandler.
func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	opts := []bot.ConfigOpt{
		bot.WithLogger(slog.Default()),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	}
	if b.Cfg.Bot.Mode == ModeGateway {
		opts = append(opts, bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)))
	}

	client, err := disgo.New(b.Cfg.Bot.Token, opts...)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// InteractionsHandler verifies and dispatches Discord HTTP interactions to the client's listeners.
func (b *Bot) InteractionsHandler() (http.HandlerFunc, error) {
	publicKey, err := hex.DecodeString(b.Cfg.Bot.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid application public key: %w", err)
	}
	return httpserver.HandleInteraction(
		httpserver.PublicKey(publicKey),
		slog.Default().With(slog.String("type", "http")),
		b.Client.EventManager().HandleHTTPEvent,
	), nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("RPG Bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("/start to begin"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.String("type", "sys"), slog.Any("error", err))
	}
}
