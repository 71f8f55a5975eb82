package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/gorpg/backend/models"
	"github.com/ellavondegurechaff/gorpg/backend/utils"
	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
)

const healthTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// WebApp represents the status server with all dependencies
type WebApp struct {
	Characters characters.Service
	Store      Pinger
	// Interactions is nil in gateway mode
	Interactions http.HandlerFunc
	WebhookPath  string
	ExposeAPI    bool
	// ProxyHeader names the forwarded-IP header; it is only read from TrustedProxies
	ProxyHeader    string
	TrustedProxies []string
	Mode         string
	Version      string
	Commit       string
}

func Index(c *fiber.Ctx) error {
	return c.SendString("RPG Bot is running!")
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		health := models.NewHealthCheck(webApp.Version, webApp.Commit, webApp.Mode)

		start := time.Now()
		if err := webApp.Store.Ping(ctx); err != nil {
			slog.Error("Database health check failed",
				slog.String("type", "http"),
				slog.Any("error", err))
			health.AddComponent("database", models.StatusUnhealthy, err.Error(), nil)
		} else {
			health.AddComponent("database", models.StatusHealthy, "", map[string]interface{}{
				"latency_ms": time.Since(start).Milliseconds(),
			})
		}

		if !health.Healthy() {
			return utils.SendServiceUnavailable(c, health, "Health check failed")
		}
		return utils.SendSuccess(c, health, "Health check successful")
	}
}

func CharacterDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := snowflake.Parse(c.Params("id"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid user id", map[string]string{"id": c.Params("id")})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		character, err := webApp.Characters.Profile(ctx, userID)
		if errors.Is(err, characters.ErrNotRegistered) {
			return utils.SendNotFound(c, "Character not found")
		}
		if err != nil {
			slog.Error("Failed to get character",
				slog.String("type", "http"),
				slog.String("user_id", userID.String()),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to get character")
		}

		return utils.SendSuccess(c, models.NewCharacterResponse(character), "")
	}
}

// NotFound is the fallback for unmatched routes
func NotFound(c *fiber.Ctx) error {
	return utils.SendNotFound(c, "Route not found")
}
