package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"school_backend/internals/constants"
	authDTO "school_backend/internals/features/users/auth/dto"
	authHelper "school_backend/internals/features/users/auth/helper"
	authModel "school_backend/internals/features/users/auth/model"
	rbacService "school_backend/internals/features/users/rbac/service"
	userModel "school_backend/internals/features/users/user/model"
	helper "school_backend/internals/helpers"
)

var validate = validator.New()

// Deliberately identical for unknown email and wrong password so the
// endpoint cannot be used to probe which emails exist.
const badCredentialsMsg = "Invalid email or password"

/* ===================== ACCOUNT CREATION ===================== */

// RegisterAccount creates a user with the given role names inside the
// caller's transaction. Shared by self-registration and by the student
// and teacher admission flows, which attach a profile in the same tx.
// New accounts start with must_change_password set.
func RegisterAccount(tx *gorm.DB, req *authDTO.RegisterRequest, roleNames []string) (*userModel.UserModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	roles, err := rbacService.ResolveRoles(tx, roleNames)
	if err != nil {
		return nil, err
	}

	hashed, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	u := &userModel.UserModel{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Password:           hashed,
		PhoneNumber:        req.PhoneNumber,
		Roles:              roles,
		IsActive:           true,
		MustChangePassword: true,
	}
	if err := tx.Create(u).Error; err != nil {
		return nil, helper.MapDBError(err, "Email already registered")
	}
	return u, nil
}

// Register is the public self-registration path: one transaction, role
// ROLE_STUDENT only.
func Register(db *gorm.DB, req *authDTO.RegisterRequest) (*userModel.UserModel, error) {
	var u *userModel.UserModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		u, err = RegisterAccount(tx, req, []string{constants.RoleStudent})
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

/* ===================== LOGIN / REFRESH ===================== */

// Login verifies credentials and returns the user plus a signed token
// pair. All credential failures return the same 401. The inactive-account
// 403 is checked after the password on purpose: it must only ever fire on
// a correct credential, otherwise it leaks which emails exist.
func Login(db *gorm.DB, req *authDTO.LoginRequest, userAgent, ip *string) (*authDTO.LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var u userModel.UserModel
	if err := db.Preload("Roles").First(&u, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, badCredentialsMsg)
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load account")
	}

	if !authHelper.CheckPasswordHash(req.Password, u.Password) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, badCredentialsMsg)
	}
	if !u.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}

	now := time.Now()
	if err := db.Model(&u).Update("last_login", now).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to record login")
	}
	u.LastLogin = &now

	access, err := GenerateAccessToken(db, &u)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateRefreshToken(db, u.ID, userAgent, ip)
	if err != nil {
		return nil, err
	}

	return authDTO.NewLoginResponse(&u, access, refresh, int64(AccessTokenTTL.Seconds())), nil
}

// Refresh rotates a refresh token: the presented token must verify AND
// still exist in storage; it is deleted and replaced in one tx.
func Refresh(db *gorm.DB, rawRefresh string, userAgent, ip *string) (*authDTO.LoginResponse, error) {
	claims, err := ParseRefreshToken(rawRefresh)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}

	var u userModel.UserModel
	var access, refresh string
	err = db.Transaction(func(tx *gorm.DB) error {
		digest := HashRefreshToken(rawRefresh)
		res := tx.Where("token = ? AND user_id = ? AND expires_at > ?", digest, userID, time.Now()).
			Delete(&authModel.RefreshTokenModel{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to rotate refresh token")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
		}

		if err := tx.Preload("Roles").First(&u, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
		}
		if !u.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
		}

		var err error
		if access, err = GenerateAccessToken(tx, &u); err != nil {
			return err
		}
		refresh, err = GenerateRefreshToken(tx, u.ID, userAgent, ip)
		return err
	})
	if err != nil {
		return nil, err
	}

	return authDTO.NewLoginResponse(&u, access, refresh, int64(AccessTokenTTL.Seconds())), nil
}

// Logout blacklists the presented access token and drops all stored
// refresh tokens for the user.
func Logout(db *gorm.DB, rawAccess string, userID uuid.UUID) error {
	claims, err := ParseAccessToken(rawAccess)
	if err != nil {
		return err
	}
	expiredAt := time.Now().Add(AccessTokenTTL)
	if claims.ExpiresAt != nil {
		expiredAt = claims.ExpiresAt.Time
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := BlacklistToken(tx, rawAccess, expiredAt); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke refresh tokens")
		}
		return nil
	})
}

/* ===================== PASSWORD ===================== */

// ChangePassword verifies the old password, stores the new hash and
// clears must_change_password. All other sessions are invalidated by
// dropping the user's refresh tokens.
func ChangePassword(db *gorm.DB, userID uuid.UUID, req *authDTO.ChangePasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var u userModel.UserModel
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load account")
		}
		if !authHelper.CheckPasswordHash(req.OldPassword, u.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "Old password is incorrect")
		}

		hashed, err := authHelper.HashPassword(req.NewPassword)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
		if err := tx.Model(&u).Updates(map[string]interface{}{
			"password":             hashed,
			"must_change_password": false,
			"credentials_expired":  false,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update password")
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke refresh tokens")
		}
		return nil
	})
}

/* ===================== HOUSEKEEPING ===================== */

// CleanupExpiredTokens purges expired refresh tokens and blacklist rows.
// Run from the cron scheduler.
func CleanupExpiredTokens(db *gorm.DB) error {
	now := time.Now()
	if err := db.Where("expires_at <= ?", now).
		Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
		return err
	}
	return db.Unscoped().Where("expired_at <= ?", now).
		Delete(&authModel.TokenBlacklist{}).Error
}
