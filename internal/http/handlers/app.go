package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"eshopadmin/internal/config"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/metrics"
	"eshopadmin/internal/repos"
)

// NewApp builds the fiber app with templates, middleware and every route.
func NewApp(cfg config.Config, g *repos.Gateway) *fiber.App {
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    4 << 20, // import files
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(metrics.Middleware())
	app.Use(logger.New(logger.Config{
		Output: applog.Writer(),
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	Register(app, NewDeps(g, cfg))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Nothing here."})
	})
	return app
}

// errorHandler never shows internals to the browser; the detail goes to the log.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	msg := "Something went wrong. Please try again."
	if code == fiber.StatusNotFound {
		msg = "Nothing here."
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
