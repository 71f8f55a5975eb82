package rpgbot

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[bot]
token = "file-token"
dev_guilds = [123, 456]

[db]
path = "rpg.db"

[web]
port = 8080

[cache]
size = 64
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Bot.Token != "file-token" {
		t.Errorf("token = %q", cfg.Bot.Token)
	}
	if cfg.Log.Level != slog.LevelDebug || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if len(cfg.Bot.DevGuilds) != 2 || cfg.Bot.DevGuilds[1] != 456 {
		t.Errorf("dev guilds = %v", cfg.Bot.DevGuilds)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.Path != "rpg.db" {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.Web.Port != 8080 || cfg.Cache.Size != 64 {
		t.Errorf("web = %+v cache = %+v", cfg.Web, cfg.Cache)
	}
	if cfg.Bot.Mode != ModeGateway {
		t.Errorf("mode = %q, want gateway default", cfg.Bot.Mode)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[bot]
token = "file-token"

[web]
port = 8080
`)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("PORT", "9090")
	t.Setenv("WEBHOOK_URL", "https://rpg.example.com/")
	t.Setenv("DB_PATH", "/data/game.db")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Bot.Token != "env-token" {
		t.Errorf("token = %q, want env override", cfg.Bot.Token)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Web.Port)
	}
	if cfg.DB.Path != "/data/game.db" {
		t.Errorf("db path = %q", cfg.DB.Path)
	}
	if got := cfg.InteractionsURL(); !strings.HasPrefix(got, "https://rpg.example.com/interactions/") {
		t.Errorf("interactions url = %q", got)
	}
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "env-only")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Bot.Token != "env-only" || cfg.DB.Path != "game.db" || cfg.Web.Port != 5000 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		c := Config{Bot: BotConfig{Token: "t"}}
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no token", mutate: func(c *Config) { c.Bot.Token = "" }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.Bot.Mode = "polling" }, wantErr: true},
		{name: "webhook without key", mutate: func(c *Config) { c.Bot.Mode = ModeWebhook }, wantErr: true},
		{name: "webhook bad key", mutate: func(c *Config) {
			c.Bot.Mode = ModeWebhook
			c.Bot.PublicKey = "zz"
		}, wantErr: true},
		{name: "webhook", mutate: func(c *Config) {
			c.Bot.Mode = ModeWebhook
			c.Bot.PublicKey = "a1b2c3"
		}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.DB.Driver = DriverPostgres }, wantErr: true},
		{name: "mongo", mutate: func(c *Config) {
			c.DB.Driver = DriverMongo
			c.DB.DSN = "mongodb://localhost:27017"
		}},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "redis" }, wantErr: true},
		{name: "negative cache", mutate: func(c *Config) { c.Cache.Size = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_WebhookPath(t *testing.T) {
	c := Config{Bot: BotConfig{Token: "secret-token"}}
	derived := c.WebhookPath()
	if !strings.HasPrefix(derived, "/interactions/") || len(derived) != len("/interactions/")+32 {
		t.Errorf("derived path = %q", derived)
	}
	if strings.Contains(derived, "secret-token") {
		t.Error("derived path leaks the token")
	}
	if derived != c.WebhookPath() {
		t.Error("derived path is not stable")
	}

	c.Bot.WebhookPath = "hooks/discord"
	if got := c.WebhookPath(); got != "/hooks/discord" {
		t.Errorf("explicit path = %q", got)
	}
}
