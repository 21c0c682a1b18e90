package apperr

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every handler error as the JSON envelope
// {success:false, message, [error]}. Unclassified errors are logged and
// reported as an internal server error without leaking their message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		body := fiber.Map{
			"success": false,
			"message": appErr.Message,
		}
		if appErr.Kind == KindInternal && appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
		return c.Status(appErr.Status()).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
		"error":   err.Error(),
	})
}
