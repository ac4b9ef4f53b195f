package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"resume-match/internal/config"
	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/logging"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		BodyLimit:       cfg.App.BodyLimit,
		StructValidator: dto.NewStructValidator(),
	})

	registerGlobalMiddleware(f, cfg, c.Logger)
	c.Routes.Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(cfg, c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *logging.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(cors.New(corsConfig(cfg.App.CORSAllowOrigins)))
	app.Use(middleware.NewSessionMiddleware(cfg.Session.CookieName).Middleware())
}

// corsConfig allows credentials unless the origin list is a wildcard,
// which browsers refuse to combine with cookies.
func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: !slices.Contains(origins, "*"),
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
