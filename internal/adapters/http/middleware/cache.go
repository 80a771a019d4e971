package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// NoCacheHeaders sets no-cache headers (staff data must not be cached)
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}

// StaticAssetCache caches fingerprinted build assets under /static for
// maxAge.  Other successful GETs (index.html) must revalidate so a new
// deploy is picked up.
func StaticAssetCache(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || c.Response().StatusCode() != fiber.StatusOK {
			return err
		}
		if strings.HasPrefix(c.Path(), "/static/") {
			c.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge.Seconds()))+", immutable")
		} else {
			c.Set("Cache-Control", "no-cache")
		}
		return err
	}
}
