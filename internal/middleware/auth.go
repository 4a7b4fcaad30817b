package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"photo-bridge/internal/service/gallery"
)

const EventIDContextKey = "gallery_event_id"

// GalleryAuth admits requests carrying a gallery token and stores the
// event it was issued for in Locals.
func GalleryAuth(galleryService gallery.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := galleryService.ValidateToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(EventIDContextKey, claims.EventID)
		return c.Next()
	}
}

func GetGalleryEventID(c *fiber.Ctx) uuid.UUID {
	eventID, ok := c.Locals(EventIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return eventID
}
