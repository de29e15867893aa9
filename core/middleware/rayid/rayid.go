package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the RayID in requests and responses.
	Header = "X-Ray-ID"
	// LocalKey is the fiber locals key holding the RayID.
	LocalKey = "ray_id"
)

// New returns a middleware that assigns every request a RayID. An incoming
// X-Ray-ID header is kept so callers can correlate across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// Get returns the RayID of the request, or "".
func Get(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalKey).(string)
	return id
}
