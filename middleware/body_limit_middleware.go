package middleware

import (
	"fmt"
	apimodels "hr-pipeline-backend/models/api"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit - отклоняет запросы с заявленным размером тела больше limit
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength == "" || contentLength == "0" {
			return c.Next()
		}
		size, err := strconv.ParseInt(contentLength, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректный заголовок Content-Length"))
		}
		if size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(fmt.Sprintf("размер запроса превышает %d байт", limit)))
		}
		return c.Next()
	}
}
