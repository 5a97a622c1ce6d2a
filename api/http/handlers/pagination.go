package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxPageLimit = 200

// parseLimitOffset читает limit/offset из query-параметров; некорректные
// значения молча заменяются значениями по умолчанию.
func parseLimitOffset(c *fiber.Ctx, defLimit int) (limit, offset int) {
	limit = defLimit
	offset = 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageLimit {
			limit = n
		}
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
