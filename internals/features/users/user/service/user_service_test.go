package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	rbacModel "school_backend/internals/features/users/rbac/model"
	userDTO "school_backend/internals/features/users/user/dto"
	userModel "school_backend/internals/features/users/user/model"
	helper "school_backend/internals/helpers"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&rbacModel.PermissionModel{},
		&rbacModel.RoleModel{},
		&userModel.UserModel{},
	))
	return db
}

func mkUser(t *testing.T, db *gorm.DB, email, lastName string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		FirstName: "Test",
		LastName:  lastName,
		Email:     email,
		Password:  "irrelevant-hash",
		IsActive:  true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestListUsersPagesInOrder(t *testing.T) {
	db := openTestDB(t)

	mkUser(t, db, "c@example.com", "Citra")
	mkUser(t, db, "a@example.com", "Agus")
	mkUser(t, db, "b@example.com", "Budi")

	p := helper.Params{Page: 1, PerPage: 2, SortBy: "email", SortOrder: "asc"}
	rows, total, err := List(db, p)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	require.Equal(t, "a@example.com", rows[0].Email)
	require.Equal(t, "b@example.com", rows[1].Email)

	p.Page = 2
	rows, total, err = List(db, p)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	require.Equal(t, "c@example.com", rows[0].Email)
}

func TestListIncludesInactiveUsers(t *testing.T) {
	db := openTestDB(t)

	mkUser(t, db, "a@example.com", "Agus")
	u := mkUser(t, db, "b@example.com", "Budi")

	_, err := Deactivate(db, u.ID)
	require.NoError(t, err)

	rows, total, err := List(db, helper.Params{Page: 1, PerPage: 10, SortBy: "email", SortOrder: "asc"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	require.False(t, rows[1].IsActive)
}

func TestDeactivateIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	u := mkUser(t, db, "a@example.com", "Agus")

	got, err := Deactivate(db, u.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	got, err = Deactivate(db, u.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	require.False(t, stored.IsActive)
}

func TestUpdateUserPatchesOnlyProvidedFields(t *testing.T) {
	db := openTestDB(t)

	u := mkUser(t, db, "a@example.com", "Agus")

	phone := "+62-811-0000"
	got, err := Update(db, u.ID, &userDTO.UpdateUserRequest{PhoneNumber: &phone})
	require.NoError(t, err)
	require.Equal(t, "Agus", got.LastName)
	require.NotNil(t, got.PhoneNumber)
	require.Equal(t, phone, *got.PhoneNumber)

	// Email and credential hash never move through this path.
	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	require.Equal(t, "a@example.com", stored.Email)
	require.Equal(t, "irrelevant-hash", stored.Password)
}
