package backend

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ellavondegurechaff/gorpg/backend/handlers"
	"github.com/ellavondegurechaff/gorpg/backend/middleware"
)

const shutdownTimeout = 15 * time.Second

// NewApp builds the status server: liveness, health, the optional character API and,
// when webApp.Interactions is set, the Discord interactions endpoint.
func NewApp(webApp *handlers.WebApp) *fiber.App {
	config := fiber.Config{
		AppName:               "RPG Bot",
		ErrorHandler:          middleware.CustomErrorHandler,
		DisableStartupMessage: true,
	}
	if webApp.ProxyHeader != "" {
		config.ProxyHeader = webApp.ProxyHeader
		config.EnableTrustedProxyCheck = true
		config.TrustedProxies = webApp.TrustedProxies
		config.EnableIPValidation = true
	}
	app := fiber.New(config)

	var secretPaths []string
	if webApp.Interactions != nil {
		secretPaths = append(secretPaths, webApp.WebhookPath)
	}

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.LoggingMiddleware(secretPaths...))

	setupRoutes(app, webApp)
	return app
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/", handlers.Index)
	app.Get("/health", handlers.HealthCheck(webApp))

	if webApp.Interactions != nil {
		app.Post(webApp.WebhookPath, adaptor.HTTPHandlerFunc(webApp.Interactions))
	}

	if webApp.ExposeAPI {
		api := app.Group("/api", middleware.APIRateLimit())
		api.Get("/characters/:id", handlers.CharacterDetail(webApp))
	}

	app.Use(handlers.NotFound)
}

// Serve listens on address until ctx is cancelled, then shuts the server down.
func Serve(ctx context.Context, app *fiber.App, address string) error {
	slog.Info("Starting status server",
		slog.String("type", "http"),
		slog.String("address", address))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down status server...", slog.String("type", "http"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
