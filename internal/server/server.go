package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Config struct {
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

func NewFiberApp(cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Concurrency:  256 * 1024,
		// ids read from params and headers end up in long-lived room state
		Immutable:    true,
		AppName:      "wordgame-service",
	})

	origins := cfg.AllowOrigins
	if origins == "" {
		// Frontend adresi; kimlik bilgisi gönderildiği için * kullanılamaz.
		origins = "http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(requestid.New())

	// basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP"})
	})
	return app
}

// Start listens on host:port; an empty host binds every interface.
func Start(app *fiber.App, host, port string) error {
	if host == "" {
		host = "0.0.0.0"
	}
	return app.Listen(fmt.Sprintf("%s:%s", host, port))
}
