package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"school_backend/internals/constants"
	academicDTO "school_backend/internals/features/school/academics/dto"
	academicModel "school_backend/internals/features/school/academics/model"
	authDTO "school_backend/internals/features/users/auth/dto"
	authModel "school_backend/internals/features/users/auth/model"
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
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklist{},
		&academicModel.SubjectModel{},
		&academicModel.TeacherModel{},
		&academicModel.SchoolClassModel{},
		&academicModel.StudentModel{},
	))
	for _, name := range constants.AllRoles {
		require.NoError(t, db.Create(&rbacModel.RoleModel{Name: name, IsActive: true}).Error)
	}
	return db
}

func studentReq(email, studentID string) *academicDTO.CreateStudentRequest {
	return &academicDTO.CreateStudentRequest{
		Account: authDTO.RegisterRequest{
			FirstName: "Dewi",
			LastName:  "Anggraini",
			Email:     email,
			Password:  "init-password",
		},
		StudentID:   studentID,
		DateOfBirth: "2010-04-12",
		Gender:      "FEMALE",
	}
}

func teacherReq(email, employeeID string) *academicDTO.CreateTeacherRequest {
	return &academicDTO.CreateTeacherRequest{
		Account: authDTO.RegisterRequest{
			FirstName: "Budi",
			LastName:  "Santoso",
			Email:     email,
			Password:  "init-password",
		},
		EmployeeID: employeeID,
		HireDate:   "2020-08-01",
	}
}

func mkTeacher(t *testing.T, db *gorm.DB, email, employeeID string) *academicModel.TeacherModel {
	t.Helper()
	m, err := CreateTeacher(db, teacherReq(email, employeeID))
	require.NoError(t, err)
	return m
}

func mkStudent(t *testing.T, db *gorm.DB, email, studentID string) *academicModel.StudentModel {
	t.Helper()
	m, err := CreateStudent(db, studentReq(email, studentID))
	require.NoError(t, err)
	return m
}

func mkSubject(t *testing.T, db *gorm.DB, code string) *academicModel.SubjectModel {
	t.Helper()
	m, err := CreateSubject(db, &academicDTO.CreateSubjectRequest{
		Name:       "Subject " + code,
		Code:       code,
		GradeLevel: 7,
	})
	require.NoError(t, err)
	return m
}

func mkClass(t *testing.T, db *gorm.DB, name string, maxStudents *int) *academicModel.SchoolClassModel {
	t.Helper()
	m, err := CreateClass(db, &academicDTO.CreateClassRequest{
		Name:        name,
		GradeLevel:  7,
		MaxStudents: maxStudents,
	})
	require.NoError(t, err)
	return m
}
