package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/weavenav/weavenav/internal/explorer"
	"github.com/weavenav/weavenav/internal/logging"
	"github.com/weavenav/weavenav/internal/models"
)

// ErrorHandler returns a custom error handler middleware
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "ERROR"
		message := "Internal Server Error"
		var details map[string]interface{}

		var explorerErr *explorer.ExplorerError
		if errors.As(err, &explorerErr) {
			code = StatusForCode(explorerErr.Code)
			errCode = explorerErr.Code
			message = explorerErr.Message
			details = explorerErr.Details
		} else if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errCode,
				Message: message,
				Path:    c.Path(),
				Details: details,
			},
		})
	}
}

// StatusForCode maps an explorer error code to an HTTP status.
func StatusForCode(code string) int {
	switch code {
	case explorer.CodeNotFound:
		return fiber.StatusNotFound
	case explorer.CodeNotConnected:
		return fiber.StatusConflict
	case explorer.CodeValidation:
		return fiber.StatusBadRequest
	case explorer.CodeRemoteAPIError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
