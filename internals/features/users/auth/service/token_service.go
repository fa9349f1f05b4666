package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"school_backend/internals/configs"
	authModel "school_backend/internals/features/users/auth/model"
	rbacService "school_backend/internals/features/users/rbac/service"
	userModel "school_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// AccessClaims is everything the middleware needs without a DB round
// trip: roles for coarse gates, permission keys for fine ones.
type AccessClaims struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a short-lived HS256 token carrying the
// user's roles and materialized permission keys.
func GenerateAccessToken(db *gorm.DB, u *userModel.UserModel) (string, error) {
	roles := make([]string, 0, len(u.Roles))
	for i := range u.Roles {
		roles = append(roles, u.Roles[i].Name)
	}
	permKeys, err := rbacService.PermissionKeysForUser(db, u.ID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := AccessClaims{
		UserID:      u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName(),
		Roles:       roles,
		Permissions: permKeys,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	return signed, nil
}

// ParseAccessToken validates signature and expiry and returns the claims.
func ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}

// GenerateRefreshToken signs a long-lived token with the refresh secret
// and persists its HMAC digest so a stolen DB dump cannot replay it.
func GenerateRefreshToken(db *gorm.DB, userID uuid.UUID, userAgent, ip *string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(RefreshTokenTTL)
	claims := RefreshClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	row := authModel.RefreshTokenModel{
		UserID:    userID,
		Token:     HashRefreshToken(signed),
		ExpiresAt: expiresAt,
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := db.Create(&row).Error; err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}
	return signed, nil
}

// ParseRefreshToken validates a refresh token against the refresh secret.
func ParseRefreshToken(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}
	return claims, nil
}

// HashRefreshToken digests a raw refresh token for storage and lookup.
func HashRefreshToken(raw string) []byte {
	mac := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	mac.Write([]byte(raw))
	return mac.Sum(nil)
}

// BlacklistToken records a revoked access token until its natural expiry.
func BlacklistToken(db *gorm.DB, raw string, expiredAt time.Time) error {
	row := authModel.TokenBlacklist{Token: raw, ExpiredAt: expiredAt}
	if err := db.Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke token")
	}
	return nil
}

// IsTokenBlacklisted reports whether a raw access token was revoked.
func IsTokenBlacklisted(db *gorm.DB, raw string) (bool, error) {
	var n int64
	if err := db.Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", raw, time.Now()).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
