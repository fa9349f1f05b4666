package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"school_backend/internals/constants"
	academicDTO "school_backend/internals/features/school/academics/dto"
	academicModel "school_backend/internals/features/school/academics/model"
	userModel "school_backend/internals/features/users/user/model"
)

func TestCreateStudentCreatesLinkedAccount(t *testing.T) {
	db := openTestDB(t)

	m := mkStudent(t, db, "dewi@example.com", "S-1001")
	require.NotNil(t, m.UserID)
	require.NotNil(t, m.User)

	var account userModel.UserModel
	require.NoError(t, db.Preload("Roles").First(&account, "id = ?", *m.UserID).Error)
	require.True(t, account.MustChangePassword)
	require.Len(t, account.Roles, 1)
	require.Equal(t, constants.RoleStudent, account.Roles[0].Name)
}

func TestCreateStudentDuplicateStudentIDRollsBackAccount(t *testing.T) {
	db := openTestDB(t)

	mkStudent(t, db, "first@example.com", "S-1001")

	_, err := CreateStudent(db, studentReq("second@example.com", "S-1001"))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusConflict, fe.Code)

	// The whole admission rolled back: no orphaned account either.
	var users, students int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&academicModel.StudentModel{}).Count(&students).Error)
	require.EqualValues(t, 1, users)
	require.EqualValues(t, 1, students)
}

func TestGetStudentByStudentID(t *testing.T) {
	db := openTestDB(t)

	created := mkStudent(t, db, "dewi@example.com", "S-1001")

	m, err := GetStudentByStudentID(db, "S-1001")
	require.NoError(t, err)
	require.Equal(t, created.ID, m.ID)

	_, err = GetStudentByStudentID(db, "S-9999")
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestSoftDeleteStudentCascadesToAccount(t *testing.T) {
	db := openTestDB(t)

	m := mkStudent(t, db, "dewi@example.com", "S-1001")

	got, err := SoftDeleteStudent(db, m.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	var account userModel.UserModel
	require.NoError(t, db.First(&account, "id = ?", *m.UserID).Error)
	require.False(t, account.IsActive)

	// Second delete is a no-op.
	_, err = SoftDeleteStudent(db, m.ID)
	require.NoError(t, err)
}

func TestCreateStudentRejectsFutureDateOfBirth(t *testing.T) {
	db := openTestDB(t)

	req := studentReq("dewi@example.com", "S-1001")
	req.DateOfBirth = "2091-01-01"

	_, err := CreateStudent(db, req)
	require.Error(t, err)

	// Rejected before persistence: no account, no profile.
	var users, students int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&academicModel.StudentModel{}).Count(&students).Error)
	require.EqualValues(t, 0, users)
	require.EqualValues(t, 0, students)
}

func TestUpdateStudentRejectsFutureDateOfBirth(t *testing.T) {
	db := openTestDB(t)

	m := mkStudent(t, db, "dewi@example.com", "S-1001")

	future := "2091-01-01"
	_, err := UpdateStudent(db, m.ID, &academicDTO.UpdateStudentRequest{DateOfBirth: &future})
	require.Error(t, err)

	stored, err := GetStudentByID(db, m.ID)
	require.NoError(t, err)
	require.Equal(t, m.DateOfBirth, stored.DateOfBirth)
}

func TestUpdateStudentPatchesOnlyProvidedFields(t *testing.T) {
	db := openTestDB(t)

	m := mkStudent(t, db, "dewi@example.com", "S-1001")

	addr := "Jl. Melati 5"
	got, err := UpdateStudent(db, m.ID, &academicDTO.UpdateStudentRequest{Address: &addr})
	require.NoError(t, err)
	require.Equal(t, &addr, got.Address)
	require.Equal(t, "S-1001", got.StudentID)
	require.Equal(t, academicModel.GenderFemale, got.Gender)
}
