package middleware

import (
	"time"

	"github.com/SundayYogurt/onboarding_service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Locals(requestIDKey, id)
		ctx.Set(HeaderRequestID, id)

		begin := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		kv := []interface{}{
			"request_id", id,
			"method", ctx.Method(),
			"path", ctx.Path(),
			"status", status,
			"latency", time.Since(begin),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request completed", kv...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request completed", kv...)
		default:
			log.Info("request completed", kv...)
		}
		return err
	}
}

// RequestID returns the id assigned by RequestLogger, or "".
func RequestID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(requestIDKey).(string)
	return id
}
