package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	rbacDTO "school_backend/internals/features/users/rbac/dto"
	rbacModel "school_backend/internals/features/users/rbac/model"
	userModel "school_backend/internals/features/users/user/model"
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

func mkPermission(t *testing.T, db *gorm.DB, resource string, typ rbacModel.PermissionType) *rbacModel.PermissionModel {
	t.Helper()
	m, err := CreatePermission(db, &rbacDTO.CreatePermissionRequest{
		Name:         resource + ":" + string(typ),
		ResourceName: resource,
		Type:         string(typ),
	})
	require.NoError(t, err)
	return m
}

func TestCreateRoleDuplicateName(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_CLERK"})
	require.NoError(t, err)

	_, err = CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_CLERK"})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestGrantAndRevokeAreIdempotent(t *testing.T) {
	db := openTestDB(t)

	role, err := CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_CLERK"})
	require.NoError(t, err)
	perm := mkPermission(t, db, "STUDENTS", rbacModel.PermissionRead)

	for i := 0; i < 2; i++ {
		got, err := GrantPermission(db, role.ID, perm.ID)
		require.NoError(t, err)
		require.Len(t, got.Permissions, 1)
	}

	for i := 0; i < 2; i++ {
		got, err := RevokePermission(db, role.ID, perm.ID)
		require.NoError(t, err)
		require.Len(t, got.Permissions, 0)
	}
}

func TestGrantUnknownPermission(t *testing.T) {
	db := openTestDB(t)

	role, err := CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_CLERK"})
	require.NoError(t, err)

	_, err = GrantPermission(db, role.ID, role.ID)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestPermissionsForUserIsDeduplicatedUnion(t *testing.T) {
	db := openTestDB(t)

	readStudents := mkPermission(t, db, "STUDENTS", rbacModel.PermissionRead)
	readClasses := mkPermission(t, db, "CLASSES", rbacModel.PermissionRead)

	clerk, err := CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_CLERK"})
	require.NoError(t, err)
	registrar, err := CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_REGISTRAR"})
	require.NoError(t, err)

	// Both roles hold STUDENTS:READ; only one holds CLASSES:READ.
	_, err = GrantPermission(db, clerk.ID, readStudents.ID)
	require.NoError(t, err)
	_, err = GrantPermission(db, registrar.ID, readStudents.ID)
	require.NoError(t, err)
	_, err = GrantPermission(db, registrar.ID, readClasses.ID)
	require.NoError(t, err)

	u := userModel.UserModel{
		FirstName: "Sari",
		LastName:  "Putri",
		Email:     "sari@example.com",
		Password:  "x",
		Roles:     []rbacModel.RoleModel{*clerk, *registrar},
		IsActive:  true,
	}
	require.NoError(t, db.Create(&u).Error)

	keys, err := PermissionKeysForUser(db, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"CLASSES:READ", "STUDENTS:READ"}, keys)
}

func TestSoftDeletePermissionKeepsGrantsInPlace(t *testing.T) {
	db := openTestDB(t)

	role, err := CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_CLERK"})
	require.NoError(t, err)
	perm := mkPermission(t, db, "STUDENTS", rbacModel.PermissionRead)

	_, err = GrantPermission(db, role.ID, perm.ID)
	require.NoError(t, err)

	got, err := SoftDeletePermission(db, perm.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	// Idempotent.
	got, err = SoftDeletePermission(db, perm.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	// The grant row survives for audit.
	stored, err := GetRoleByID(db, role.ID)
	require.NoError(t, err)
	require.Len(t, stored.Permissions, 1)
}

func TestSoftDeleteRoleIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	role, err := CreateRole(db, &rbacDTO.CreateRoleRequest{Name: "ROLE_CLERK"})
	require.NoError(t, err)

	got, err := SoftDeleteRole(db, role.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	got, err = SoftDeleteRole(db, role.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}
