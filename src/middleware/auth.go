package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SyedAzeem24/blood-donation-system/src/lib"
	"github.com/SyedAzeem24/blood-donation-system/src/models"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

// Auth guards routes behind a bearer token. The user document is re-fetched
// on every request rather than trusted from the token, so role changes and
// the donor's lastDonation are never read from a stale copy.
type Auth struct {
	users  *store.Users
	secret string
}

func NewAuth(users *store.Users, secret string) *Auth {
	return &Auth{users: users, secret: secret}
}

func (a *Auth) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Authorization token required"))
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Invalid authorization format"))
		}

		claims, err := lib.ParseToken(tokenString, a.secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Invalid or expired token"))
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Invalid token"))
		}

		user, err := a.users.FindByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("User not found"))
		}

		c.Locals("user", *user)
		return c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not in the allow
// list. Must run after Protect.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Access denied. Insufficient permissions."))
	}
}

// CurrentUser returns the user attached by Protect.
func CurrentUser(c *fiber.Ctx) models.User {
	return c.Locals("user").(models.User)
}
