package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ellavondegurechaff/gorpg/backend"
	"github.com/ellavondegurechaff/gorpg/backend/handlers"
	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/rpgbot"
	"github.com/ellavondegurechaff/gorpg/rpgbot/commands"
	"github.com/ellavondegurechaff/gorpg/rpgbot/logger"
	"github.com/ellavondegurechaff/gorpg/rpgbot/services"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath         string
	shouldSyncCommands bool

	cfg *rpgbot.Config
)

var rootCmd = &cobra.Command{
	Use:          "gorpg",
	Short:        "RPG character bot for Discord",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = rpgbot.LoadConfig(configPath)
		if err != nil {
			slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
			return err
		}
		slog.SetDefault(slog.New(logger.New(logger.Options{
			Level:     cfg.Log.Level,
			Format:    cfg.Log.Format,
			AddSource: cfg.Log.AddSource,
		})))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCmd.Flags().BoolVar(&shouldSyncCommands, "sync-commands", false, "Whether to sync commands to discord")
}

// Execute runs the CLI. version and commit are set by the linker.
func Execute(v string, c string) {
	version, commit = v, c
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)

	slog.SetDefault(slog.New(logger.New(logger.Options{})))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBot(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	start := time.Now()

	logger.LogSystem("Starting RPG Bot",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("mode", cfg.Bot.Mode))

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	storage, err := rpgbot.OpenStorage(openCtx, *cfg)
	cancel()
	if err != nil {
		logger.LogError("Database connection failed", err, slog.String("driver", cfg.DB.Driver))
		return err
	}
	defer storage.Close(context.Background())

	b := rpgbot.New(*cfg, version, commit)
	b.Storage = storage
	b.Characters = characters.NewService(storage.Characters)
	if cfg.Profile.RenderCard {
		b.ProfileImages = services.NewProfileImageService(time.Duration(cfg.Profile.RenderTimeoutSeconds) * time.Second)
	}

	listeners := []bot.EventListener{commands.NewRouter(b)}
	if cfg.Bot.Mode == rpgbot.ModeGateway {
		listeners = append(listeners, bot.NewListenerFunc(b.OnReady))
	}
	if err = b.SetupBot(listeners...); err != nil {
		logger.LogError("Failed to setup bot", err,
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"))
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(closeCtx)
	}()

	if shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			logger.LogError("Failed to sync commands", err,
				slog.String("component", "command_sync"),
				slog.String("status", "failed"))
		}
	}

	webApp := &handlers.WebApp{
		Characters:  b.Characters,
		Store:       storage,
		WebhookPath: cfg.WebhookPath(),
		ExposeAPI:   cfg.Web.ExposeAPI,
		Mode:        cfg.Bot.Mode,

		ProxyHeader:    cfg.Web.ProxyHeader,
		TrustedProxies: cfg.Web.TrustedProxies,
		Version:     version,
		Commit:      commit,
	}
	if cfg.Bot.Mode == rpgbot.ModeWebhook {
		if webApp.Interactions, err = b.InteractionsHandler(); err != nil {
			return err
		}
		slog.Info("Interactions endpoint ready",
			slog.String("type", "sys"),
			slog.String("url", cfg.InteractionsURL()))
	}
	app := backend.NewApp(webApp)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return backend.Serve(gctx, app, cfg.WebAddress())
	})
	if cfg.Bot.Mode == rpgbot.ModeGateway {
		g.Go(func() error {
			openCtx, cancel := context.WithTimeout(gctx, 10*time.Second)
			defer cancel()
			if err := b.Client.OpenGateway(openCtx); err != nil {
				logger.LogError("Failed to open gateway", err,
					slog.String("component", "gateway"),
					slog.String("status", "failed"))
				return err
			}
			<-gctx.Done()
			return nil
		})
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.", logger.Since(start))
	err = g.Wait()
	logger.LogSystem("Shutting down bot...")
	return err
}
