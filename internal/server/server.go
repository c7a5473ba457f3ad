package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"userdict/internal/dictionary"
	"userdict/internal/handler"
	"userdict/internal/middleware"
)

// Server wraps the Fiber app.
type Server struct {
	App *fiber.App
}

// New creates the HTTP server with middleware and routes configured.
func New(dict *dictionary.Dictionary, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"status": "error",
				"error":  message,
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))

	h := handler.New(dict, logger)

	app.Post("/words", h.AddWord)
	app.Get("/words/:word", h.CheckWord)
	app.Get("/suggest", h.Suggest)
	app.Get("/healthz", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return &Server{App: app}
}

// Start starts the server on the given address.
func (s *Server) Start(addr string) error {
	return s.App.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
