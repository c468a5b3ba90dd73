// server/http/server.go
package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/fiberzerolog"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/studynotes-server/auth"
)

var validate = validator.New()

// NewApp builds the fiber application with every route mounted. authMw
// guards the API; the websocket route is open.
func (s *Server) NewApp(authMw fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "studynotes",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, " + auth.TokenHeader,
	}))
	app.Use(fiberzerolog.New(fiberzerolog.Config{
		Logger: &s.log,
		Fields: []string{fiberzerolog.FieldMethod, fiberzerolog.FieldPath, fiberzerolog.FieldStatus, fiberzerolog.FieldLatency},
		Levels: []zerolog.Level{zerolog.ErrorLevel, zerolog.WarnLevel, zerolog.DebugLevel},
	}))

	api := app.Group("/api", authMw)

	api.Get("/subjects", s.HandleSubjects)
	api.Get("/state", s.HandleState)

	api.Get("/notes", s.HandleNotes)
	api.Post("/notes", s.HandleCreateNote)
	api.Post("/notes/import", s.HandleImportNote)
	api.Get("/notes/:id", s.HandleGetNote)
	api.Put("/notes/:id", s.HandleUpdateNote)
	api.Delete("/notes/:id", s.HandleDeleteNote)
	api.Get("/notes/:id/markdown", s.HandleExportNote)
	api.Post("/notes/:id/open", s.HandleOpenNote)
	api.Post("/notes/:id/share", s.HandleShareNote)

	api.Post("/focus/back", s.HandleBack)
	api.Put("/filter", s.HandleFilter)
	api.Put("/mode", s.HandleSetMode)
	api.Post("/mode/toggle", s.HandleToggleMode)

	api.Post("/form/new", s.HandleFormNew)
	api.Post("/form/edit/:id", s.HandleFormEdit)
	api.Put("/form", s.HandleFormDraft)
	api.Post("/form/submit", s.HandleFormSubmit)
	api.Post("/form/cancel", s.HandleFormCancel)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(s.HandleWebSocket))

	return app
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
