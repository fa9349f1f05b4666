package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	academicDTO "school_backend/internals/features/school/academics/dto"
)

func TestAssignTeacherToSubjectIsSymmetric(t *testing.T) {
	db := openTestDB(t)

	subject := mkSubject(t, db, "MATH-7")
	teacher := mkTeacher(t, db, "budi@example.com", "T-2001")

	got, err := AssignTeacherToSubject(db, subject.ID, teacher.ID)
	require.NoError(t, err)
	require.Len(t, got.Teachers, 1)
	require.Equal(t, teacher.ID, got.Teachers[0].ID)

	// The other side of the relation sees the same link.
	fromTeacher, err := ListSubjectsByTeacher(db, teacher.ID)
	require.NoError(t, err)
	require.Len(t, fromTeacher, 1)
	require.Equal(t, subject.ID, fromTeacher[0].ID)

	// Assigning again is a no-op, not a duplicate.
	got, err = AssignTeacherToSubject(db, subject.ID, teacher.ID)
	require.NoError(t, err)
	require.Len(t, got.Teachers, 1)
}

func TestRemoveTeacherFromSubjectIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	subject := mkSubject(t, db, "MATH-7")
	teacher := mkTeacher(t, db, "budi@example.com", "T-2001")

	_, err := AssignTeacherToSubject(db, subject.ID, teacher.ID)
	require.NoError(t, err)

	got, err := RemoveTeacherFromSubject(db, subject.ID, teacher.ID)
	require.NoError(t, err)
	require.Len(t, got.Teachers, 0)

	fromTeacher, err := ListSubjectsByTeacher(db, teacher.ID)
	require.NoError(t, err)
	require.Len(t, fromTeacher, 0)

	// Removing a link that is already gone is a no-op.
	got, err = RemoveTeacherFromSubject(db, subject.ID, teacher.ID)
	require.NoError(t, err)
	require.Len(t, got.Teachers, 0)
}

func TestAssignTeacherUnknownIDs(t *testing.T) {
	db := openTestDB(t)

	subject := mkSubject(t, db, "MATH-7")
	teacher := mkTeacher(t, db, "budi@example.com", "T-2001")

	_, err := AssignTeacherToSubject(db, teacher.ID, teacher.ID)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusNotFound, fe.Code)

	_, err = AssignTeacherToSubject(db, subject.ID, subject.ID)
	require.Error(t, err)
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestCreateSubjectDuplicateCode(t *testing.T) {
	db := openTestDB(t)

	mkSubject(t, db, "MATH-7")

	_, err := CreateSubject(db, &academicDTO.CreateSubjectRequest{
		Name:       "Mathematics",
		Code:       "MATH-7",
		GradeLevel: 7,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	require.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestListSubjectsByGradeLevel(t *testing.T) {
	db := openTestDB(t)

	mkSubject(t, db, "MATH-7")
	mkSubject(t, db, "BIO-7")

	rows, err := ListSubjectsByGradeLevel(db, 7)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, err = ListSubjectsByGradeLevel(db, 8)
	require.NoError(t, err)
	require.Len(t, rows, 0)
}
