package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Paths logged at debug level instead of info; liveness probes would
// otherwise dominate the request log.
var quietPaths = map[string]bool{
	"/health": true,
}

// FiberMiddleware tags each request with an ID, threads the logger through
// the request context, and writes one line per completed request.
func FiberMiddleware(logger *Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
			c.Set("X-Request-ID", requestID)
		}

		ctx := WithRequestID(c.UserContext(), requestID)
		c.SetUserContext(WithLogger(ctx, logger))

		err := c.Next()

		status := c.Response().StatusCode()
		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		}
		if connID := c.Params("id"); connID != "" {
			fields = append(fields, "connection_id", connID)
		}

		switch {
		case err != nil:
			logger.Error("Request failed", append(fields, "error", err)...)
		case status >= 500:
			logger.Error("Server error", fields...)
		case status >= 400:
			logger.Warn("Client error", fields...)
		case quietPaths[c.Path()]:
			logger.Debug("Request completed", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
		return err
	}
}
