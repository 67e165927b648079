package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// HeaderRequestID - заголовок сквозного идентификатора запроса
const HeaderRequestID = "X-Request-ID"

// RequestID - middleware сквозного идентификатора запроса.
// Входящий заголовок уважается, иначе генерируется новый UUID.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// RequestIDFrom возвращает идентификатор текущего запроса
func RequestIDFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
