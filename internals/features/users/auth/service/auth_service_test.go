package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"school_backend/internals/configs"
	"school_backend/internals/constants"
	authDTO "school_backend/internals/features/users/auth/dto"
	authModel "school_backend/internals/features/users/auth/model"
	rbacModel "school_backend/internals/features/users/rbac/model"
	userModel "school_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&rbacModel.PermissionModel{},
		&rbacModel.RoleModel{},
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklist{},
	))
	for _, name := range constants.AllRoles {
		require.NoError(t, db.Create(&rbacModel.RoleModel{Name: name, IsActive: true}).Error)
	}
	return db
}

func registerReq(email string) *authDTO.RegisterRequest {
	return &authDTO.RegisterRequest{
		FirstName: "Ayu",
		LastName:  "Lestari",
		Email:     email,
		Password:  "s3cret-pass",
	}
}

func TestRegisterCreatesStudentAccount(t *testing.T) {
	db := openTestDB(t)

	u, err := Register(db, registerReq("ayu@example.com"))
	require.NoError(t, err)

	require.True(t, u.MustChangePassword)
	require.True(t, u.IsActive)
	require.NotEqual(t, "s3cret-pass", u.Password)

	var stored userModel.UserModel
	require.NoError(t, db.Preload("Roles").First(&stored, "id = ?", u.ID).Error)
	require.Len(t, stored.Roles, 1)
	require.Equal(t, constants.RoleStudent, stored.Roles[0].Name)
}

func TestRegisterDuplicateEmailLeavesNoPartialRows(t *testing.T) {
	db := openTestDB(t)

	_, err := Register(db, registerReq("dup@example.com"))
	require.NoError(t, err)

	_, err = Register(db, registerReq("dup@example.com"))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusConflict, fe.Code)

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestRegisterAccountUnknownRole(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := RegisterAccount(tx, registerReq("ghost@example.com"), []string{"ROLE_GHOST"})
		return err
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusNotFound, fe.Code)

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := openTestDB(t)

	_, err := Register(db, registerReq("known@example.com"))
	require.NoError(t, err)

	_, errUnknown := Login(db, &authDTO.LoginRequest{Email: "nobody@example.com", Password: "whatever123"}, nil, nil)
	_, errBadPass := Login(db, &authDTO.LoginRequest{Email: "known@example.com", Password: "wrong-pass12"}, nil, nil)

	feUnknown, ok := errUnknown.(*fiber.Error)
	require.True(t, ok)
	feBadPass, ok := errBadPass.(*fiber.Error)
	require.True(t, ok)

	require.Equal(t, fiber.StatusUnauthorized, feUnknown.Code)
	require.Equal(t, feUnknown.Code, feBadPass.Code)
	require.Equal(t, feUnknown.Message, feBadPass.Message)
}

func TestLoginIssuesTokensAndRecordsLastLogin(t *testing.T) {
	db := openTestDB(t)

	u, err := Register(db, registerReq("login@example.com"))
	require.NoError(t, err)
	require.Nil(t, u.LastLogin)

	res, err := Login(db, &authDTO.LoginRequest{Email: "login@example.com", Password: "s3cret-pass"}, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Tokens.AccessToken)
	require.NotEmpty(t, res.Tokens.RefreshToken)
	require.NotNil(t, res.User.LastLogin)

	claims, err := ParseAccessToken(res.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID.String(), claims.UserID)
	require.Contains(t, claims.Roles, constants.RoleStudent)

	// Stored refresh token is a digest, never the raw string.
	var row authModel.RefreshTokenModel
	require.NoError(t, db.First(&row, "user_id = ?", u.ID).Error)
	require.NotEqual(t, []byte(res.Tokens.RefreshToken), row.Token)
	require.Equal(t, HashRefreshToken(res.Tokens.RefreshToken), row.Token)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := openTestDB(t)

	_, err := Register(db, registerReq("rotate@example.com"))
	require.NoError(t, err)
	res, err := Login(db, &authDTO.LoginRequest{Email: "rotate@example.com", Password: "s3cret-pass"}, nil, nil)
	require.NoError(t, err)

	rotated, err := Refresh(db, res.Tokens.RefreshToken, nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, res.Tokens.RefreshToken, rotated.Tokens.RefreshToken)

	// The spent token cannot be replayed.
	_, err = Refresh(db, res.Tokens.RefreshToken, nil, nil)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestLogoutBlacklistsAndDropsRefreshTokens(t *testing.T) {
	db := openTestDB(t)

	u, err := Register(db, registerReq("bye@example.com"))
	require.NoError(t, err)
	res, err := Login(db, &authDTO.LoginRequest{Email: "bye@example.com", Password: "s3cret-pass"}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, Logout(db, res.Tokens.AccessToken, u.ID))

	blacklisted, err := IsTokenBlacklisted(db, res.Tokens.AccessToken)
	require.NoError(t, err)
	require.True(t, blacklisted)

	var n int64
	require.NoError(t, db.Model(&authModel.RefreshTokenModel{}).Where("user_id = ?", u.ID).Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestChangePasswordClearsMustChangeFlag(t *testing.T) {
	db := openTestDB(t)

	u, err := Register(db, registerReq("pwd@example.com"))
	require.NoError(t, err)
	require.True(t, u.MustChangePassword)

	err = ChangePassword(db, u.ID, &authDTO.ChangePasswordRequest{
		OldPassword: "wrong-old-pass",
		NewPassword: "brand-new-pass",
	})
	require.Error(t, err)

	require.NoError(t, ChangePassword(db, u.ID, &authDTO.ChangePasswordRequest{
		OldPassword: "s3cret-pass",
		NewPassword: "brand-new-pass",
	}))

	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	require.False(t, stored.MustChangePassword)

	_, err = Login(db, &authDTO.LoginRequest{Email: "pwd@example.com", Password: "brand-new-pass"}, nil, nil)
	require.NoError(t, err)
}
