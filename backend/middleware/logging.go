package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/gorpg/backend/utils"
)

// LoggingMiddleware logs HTTP requests in a structured format.
// Paths listed in secretPaths are logged as "***".
func LoggingMiddleware(secretPaths ...string) fiber.Handler {
	secrets := make(map[string]struct{}, len(secretPaths))
	for _, p := range secretPaths {
		secrets[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		statusCode := c.Response().StatusCode()
		logLevel := slog.LevelInfo
		if statusCode >= 400 && statusCode < 500 {
			logLevel = slog.LevelWarn
		} else if statusCode >= 500 {
			logLevel = slog.LevelError
		}

		logger := slog.With(
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", redactPath(c.Path(), secrets)),
			slog.Int("code", statusCode),
			slog.Duration("took", time.Since(start)),
			slog.String("ip", utils.GetIPAddress(c)),
			slog.String("user_agent", utils.GetUserAgent(c)),
			slog.Int("size", len(c.Response().Body())),
		)

		message := "HTTP request processed"
		if err != nil {
			message = "HTTP request failed"
			logger = logger.With(slog.Any("error", err))
		}

		logger.Log(c.Context(), logLevel, message)
		return err
	}
}

func redactPath(path string, secrets map[string]struct{}) string {
	if _, ok := secrets[path]; ok {
		return "***"
	}
	return path
}
