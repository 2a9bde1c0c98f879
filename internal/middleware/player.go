package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// MaxPlayerIDLength bounds the ids clients may pick for themselves.
const MaxPlayerIDLength = 64

// EnsurePlayerID resolves the caller's player id from the X-Player-ID header
// or the playerId query parameter and stores it in Locals under "playerID".
//
// Header and query values point into fasthttp's request buffer, which is
// reused by the next request. The id outlives the request as a seat and as a
// connection key, so it is copied before it is stored.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("playerID").(string); ok {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		switch {
		case playerID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player id is required",
			})
		case len(playerID) > MaxPlayerIDLength:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player id is too long",
			})
		}

		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
