package rpgbot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

const (
	ModeGateway = "gateway"
	ModeWebhook = "webhook"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// LoadConfig reads the TOML file at path and applies environment overrides on top.
// A missing file is not an error: the bot can be configured from the environment alone.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Config file not found, using environment only",
			slog.String("type", "sys"),
			slog.String("path", path))
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err = env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	Bot     BotConfig     `toml:"bot"`
	DB      DBConfig      `toml:"db"`
	Web     WebConfig     `toml:"web"`
	Cache   CacheConfig   `toml:"cache"`
	Profile ProfileConfig `toml:"profile"`
}

type BotConfig struct {
	DevGuilds   []snowflake.ID `toml:"dev_guilds"`
	Token       string         `toml:"token" env:"BOT_TOKEN"`
	PublicKey   string         `toml:"public_key" env:"BOT_PUBLIC_KEY"`
	Mode        string         `toml:"mode" env:"BOT_MODE"`
	WebhookURL  string         `toml:"webhook_url" env:"WEBHOOK_URL"`
	WebhookPath string         `toml:"webhook_path" env:"WEBHOOK_PATH"`
	// handlers slower than this are logged as warnings
	SlowCommandMillis int `toml:"slow_command_ms"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level" env:"LOG_LEVEL"`
	Format    string     `toml:"format" env:"LOG_FORMAT"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Driver       string `toml:"driver" env:"DB_DRIVER"`
	Path         string `toml:"path" env:"DB_PATH"`
	DSN          string `toml:"dsn" env:"DB_DSN"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type WebConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port" env:"PORT"`
	ExposeAPI bool   `toml:"expose_api"`
	// client IPs are read from ProxyHeader only for requests coming from TrustedProxies
	ProxyHeader    string   `toml:"proxy_header"`
	TrustedProxies []string `toml:"trusted_proxies"`
}

type CacheConfig struct {
	// 0 disables the character cache
	Size int `toml:"size"`
}

type ProfileConfig struct {
	RenderCard           bool `toml:"render_card"`
	RenderTimeoutSeconds int  `toml:"render_timeout_seconds"`
}

func (c *Config) applyDefaults() {
	if c.Bot.Mode == "" {
		c.Bot.Mode = ModeGateway
	}
	if c.Bot.SlowCommandMillis <= 0 {
		c.Bot.SlowCommandMillis = 2000
	}
	if c.DB.Driver == "" {
		c.DB.Driver = DriverSQLite
	}
	if c.DB.Driver == DriverSQLite && c.DB.Path == "" {
		c.DB.Path = "game.db"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 5000
	}
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Profile.RenderTimeoutSeconds <= 0 {
		c.Profile.RenderTimeoutSeconds = 15
	}
	c.Bot.Mode = strings.ToLower(c.Bot.Mode)
	c.DB.Driver = strings.ToLower(c.DB.Driver)
}

func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("bot token is required (bot.token or BOT_TOKEN)")
	}

	switch c.Bot.Mode {
	case ModeGateway:
	case ModeWebhook:
		if c.Bot.PublicKey == "" {
			return errors.New("webhook mode requires the application public key (bot.public_key or BOT_PUBLIC_KEY)")
		}
		if _, err := hex.DecodeString(c.Bot.PublicKey); err != nil {
			return fmt.Errorf("invalid application public key: %w", err)
		}
	default:
		return fmt.Errorf("unknown bot mode %q", c.Bot.Mode)
	}

	switch c.DB.Driver {
	case DriverSQLite:
	case DriverPostgres, DriverMongo:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s driver requires db.dsn or DB_DSN", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.DB.Driver)
	}

	if c.Cache.Size < 0 {
		return errors.New("cache.size must not be negative")
	}
	return nil
}

// WebhookPath is the route the interactions endpoint is served on.
// Without an explicit path it is derived from the bot token, so it is not guessable
// and the token itself never appears in a URL.
func (c *Config) WebhookPath() string {
	if c.Bot.WebhookPath != "" {
		return "/" + strings.TrimPrefix(c.Bot.WebhookPath, "/")
	}
	sum := sha256.Sum256([]byte(c.Bot.Token))
	return "/interactions/" + hex.EncodeToString(sum[:])[:32]
}

// InteractionsURL is the public URL to paste into the application's Interactions Endpoint setting.
func (c *Config) InteractionsURL() string {
	if c.Bot.WebhookURL == "" {
		return ""
	}
	return strings.TrimSuffix(c.Bot.WebhookURL, "/") + c.WebhookPath()
}

func (c *Config) WebAddress() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}
