package middleware

import (
	"log/slog"
	"time"

	"DocRegistry/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger attaches a request-scoped logger to the user context and
// writes one line per request.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID, _ := c.Locals("requestid").(string)

		logger := base.With("request_id", requestID)
		c.SetUserContext(utils.ContextWithLogger(c.UserContext(), logger))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		logger.Info("http_request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

// SecurityHeaders sets the headers every HTML response carries.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		c.Set(fiber.HeaderXFrameOptions, "DENY")
		c.Set(fiber.HeaderReferrerPolicy, "same-origin")
		return c.Next()
	}
}
