package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// Пустой список разрешает любой origin без credentials.
func CORS(allowOrigins []string) fiber.Handler {
	cfg := cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Accept,Accept-Language,X-Request-ID",
	}
	if len(allowOrigins) > 0 {
		cfg.AllowOrigins = strings.Join(allowOrigins, ",")
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
