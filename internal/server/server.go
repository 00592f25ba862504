// Package server assembles the Fiber application: middleware, error
// rendering and routes.
package server

import (
	"errors"
	"strings"

	"github.com/arzan03/bssm-backend/internal/config"
	"github.com/arzan03/bssm-backend/internal/handlers"
	"github.com/arzan03/bssm-backend/internal/metrics"
	"github.com/arzan03/bssm-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func New(cfg *config.Config, h *handlers.Handler, log logrus.FieldLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "BSSM Backend",
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(corsConfig(cfg.AllowedOrigins())))
	app.Use(middleware.Metrics())

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	h.Register(app)

	return app
}

// corsConfig allows credentials for every origin when origins is empty,
// reflecting the caller's Origin back.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS",
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		cfg.AllowOriginsFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = strings.Join(origins, ",")
	}
	return cfg
}

func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
			if code == fiber.StatusNotFound {
				msg = "Not Found"
			}
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{"detail": msg})
	}
}
