// Package presenter holds the HTTP response envelope shared by all handlers.
package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse — единый формат ошибки для всех эндпоинтов.
type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}
