package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetRawAccessToken returns the access token from the Authorization
// header, falling back to the access_token cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// GetRefreshTokenFromCookie returns the refresh token cookie, or the
// refresh_token field of the body when no cookie is set.
func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	if rt := strings.TrimSpace(c.Cookies("refresh_token")); rt != "" {
		return rt
	}
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err == nil {
		return strings.TrimSpace(body.RefreshToken)
	}
	return ""
}
