package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// HeaderRequestID is the header the correlation id is read from and echoed on.
const HeaderRequestID = "X-Request-ID"

// requestIDKey is the Locals key carrying the per-request correlation id.
const requestIDKey = "request_id"

// RequestID tags every request with a correlation id. A caller-supplied
// X-Request-ID wins so ids survive proxy hops.
func RequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// RequestIDFromCtx returns the id attached by RequestID, or "" outside it.
func RequestIDFromCtx(c fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// RequestLogger emits one structured log line per request.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// The error handler has not run yet when err is non-nil, so derive
		// the status the envelope will carry instead of reading the response.
		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = classify(err)
		}

		logger.Info("request handled",
			"request_id", RequestIDFromCtx(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

// Recover converts a handler panic into an error so one bad request cannot
// take the process down.
func Recover() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return c.Next()
	}
}
