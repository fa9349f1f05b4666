package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "school_backend/internals/features/users/auth/service"
	helper "school_backend/internals/helpers"
)

// AuthMiddleware verifies the access token, rejects blacklisted ones
// and stores the identity claims in Locals for downstream handlers.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing token")
		}

		// Blacklist check once per request.
		if c.Locals("token_checked") == nil {
			blacklisted, err := authService.IsTokenBlacklisted(db, raw)
			if err != nil {
				log.Println("[ERROR] blacklist lookup failed:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if blacklisted {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is revoked")
			}
			c.Locals("token_checked", true)
		}

		claims, err := authService.ParseAccessToken(raw)
		if err != nil {
			return err
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("roles", claims.Roles)
		c.Locals("permissions", claims.Permissions)
		return c.Next()
	}
}
