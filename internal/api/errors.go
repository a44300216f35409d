package api

import (
	"errors"
	"log/slog"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
	"github.com/gofiber/fiber/v3"
)

// Envelope strings shown to API clients. The frontend matches on these, so
// they stay stable.
const (
	msgNotFound = "Not Found: The requested resource does not exist."
	msgStore    = "Internal Server Error: Could not connect to the database. Please try again later."
	msgInternal = "Internal Server Error: An unexpected error occurred. Please try again or contact support."
)

// ErrorHandler renders every error escaping a handler as the shared error
// envelope. Client errors log at warn, server errors at error.
func ErrorHandler(logger *slog.Logger) func(fiber.Ctx, error) error {
	return func(c fiber.Ctx, err error) error {
		status, errorType, message := classify(err)

		attrs := []any{
			"request_id", RequestIDFromCtx(c),
			"method", c.Method(),
			"path", c.Path(),
			"error_type", errorType,
			"error", err,
		}
		if status < 500 {
			logger.Warn("request failed", attrs...)
		} else {
			logger.Error("request failed", attrs...)
		}

		return c.Status(status).JSON(models.ErrorResponse{
			Status:    status,
			Message:   message,
			ErrorType: errorType,
		})
	}
}

// classify maps an error onto the envelope's status code, error type, and
// user-facing message.
func classify(err error) (int, string, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusNotFound:
			return fiber.StatusNotFound, "NotFound", msgNotFound
		case fe.Code >= 400 && fe.Code < 500:
			return fe.Code, "BadRequest", "Bad Request: " + fe.Message
		}
	}

	switch errs.KindOf(err) {
	case errs.KindValidation:
		return fiber.StatusBadRequest, "BadRequest", "Bad Request: " + reason(err)
	case errs.KindStoreConnection:
		return fiber.StatusInternalServerError, "DatabaseConnectionError", msgStore
	case errs.KindUpstreamModel:
		return fiber.StatusInternalServerError, "UpstreamAPIError",
			"Internal Server Error: Model API issue. Reason: " + reason(err) + ". Please check API permissions/quotas."
	}
	return fiber.StatusInternalServerError, "InternalServerError", msgInternal
}

// reason digs out the most specific human-readable cause of err.
func reason(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
