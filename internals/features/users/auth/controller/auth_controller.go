package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authDTO "school_backend/internals/features/users/auth/dto"
	authService "school_backend/internals/features/users/auth/service"
	userDTO "school_backend/internals/features/users/user/dto"
	userService "school_backend/internals/features/users/user/service"
	helper "school_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func clientMeta(c *fiber.Ctx) (userAgent, ip *string) {
	if ua := c.Get("User-Agent"); ua != "" {
		userAgent = &ua
	}
	if addr := c.IP(); addr != "" {
		ip = &addr
	}
	return
}

func setTokenCookies(c *fiber.Ctx, tokens authDTO.TokenPairResponse) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tokens.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(authService.AccessTokenTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    tokens.RefreshToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(authService.RefreshTokenTTL),
	})
}

func clearTokenCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", HTTPOnly: true, Expires: expired})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", HTTPOnly: true, Expires: expired})
}

// POST /api/auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u, err := authService.Register(h.DB.WithContext(c.Context()), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Account registered", userDTO.NewUserResponse(u))
}

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	ua, ip := clientMeta(c)
	res, err := authService.Login(h.DB.WithContext(c.Context()), &req, ua, ip)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	setTokenCookies(c, res.Tokens)
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/refresh-token
func (h *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}
	ua, ip := clientMeta(c)
	res, err := authService.Refresh(h.DB.WithContext(c.Context()), raw, ua, ip)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	setTokenCookies(c, res.Tokens)
	return helper.JsonOK(c, "Token refreshed", res)
}

// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing token")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := authService.Logout(h.DB.WithContext(c.Context()), raw, userID); err != nil {
		return helper.FromFiberError(c, err)
	}
	clearTokenCookies(c)
	return helper.JsonOK(c, "Logged out", fiber.Map{"user_id": userID})
}

// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := userService.GetByID(h.DB.WithContext(c.Context()), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", userDTO.NewUserResponse(u))
}

// POST /api/auth/change-password
func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := authService.ChangePassword(h.DB.WithContext(c.Context()), userID, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	clearTokenCookies(c)
	return helper.JsonUpdated(c, "Password changed, please login again", fiber.Map{"user_id": userID})
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
