package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Sparepart-api/pkg/logger"
)

// ServerConfig opciones de la app Fiber.
type ServerConfig struct {
	Name        string
	CORSOrigins string // vacío = refleja cualquier Origin
	Docs        bool   // sirve /docs con docs/swagger.json
	DocsPath    string
}

// NewServer construye la app Fiber con middlewares globales y todas las rutas.
func NewServer(cfg ServerConfig, deps RouterDeps, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(AccessLog(log))

	corsCfg := cors.Config{
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}
	if cfg.CORSOrigins != "" {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowOriginsFunc = func(string) bool { return true }
	}
	app.Use(cors.New(corsCfg))

	if cfg.Docs {
		docsPath := cfg.DocsPath
		if docsPath == "" {
			docsPath = "./docs/swagger.json"
		}
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: docsPath,
			Path:     "docs",
			Title:    "Sparepart API",
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API Inventaris Sparepart berjalan"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}
