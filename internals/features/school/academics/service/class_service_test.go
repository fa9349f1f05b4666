package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	academicModel "school_backend/internals/features/school/academics/model"
)

func intPtr(n int) *int { return &n }

func TestAddStudentToClassRespectsCapacity(t *testing.T) {
	db := openTestDB(t)

	class := mkClass(t, db, "7A", intPtr(2))
	s1 := mkStudent(t, db, "a@example.com", "S-1001")
	s2 := mkStudent(t, db, "b@example.com", "S-1002")
	s3 := mkStudent(t, db, "c@example.com", "S-1003")

	got, err := AddStudentToClass(db, class.ID, s1.ID)
	require.NoError(t, err)
	require.Len(t, got.Students, 1)

	got, err = AddStudentToClass(db, class.ID, s2.ID)
	require.NoError(t, err)
	require.Len(t, got.Students, 2)

	_, err = AddStudentToClass(db, class.ID, s3.ID)
	require.ErrorIs(t, err, ErrClassCapacityExceeded)

	// Nothing moved on the failed enrollment.
	var stored academicModel.StudentModel
	require.NoError(t, db.First(&stored, "id = ?", s3.ID).Error)
	require.Nil(t, stored.ClassID)
}

func TestAddStudentToFullSingleSeatClass(t *testing.T) {
	db := openTestDB(t)

	class := mkClass(t, db, "7A", intPtr(1))
	s1 := mkStudent(t, db, "a@example.com", "S-1001")
	s2 := mkStudent(t, db, "b@example.com", "S-1002")

	_, err := AddStudentToClass(db, class.ID, s1.ID)
	require.NoError(t, err)

	_, err = AddStudentToClass(db, class.ID, s2.ID)
	require.ErrorIs(t, err, ErrClassCapacityExceeded)

	// Re-enrolling the member is a no-op, not a capacity failure.
	got, err := AddStudentToClass(db, class.ID, s1.ID)
	require.NoError(t, err)
	require.Len(t, got.Students, 1)
}

func TestAddStudentUnlimitedWhenNoCapacitySet(t *testing.T) {
	db := openTestDB(t)

	class := mkClass(t, db, "7A", nil)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		s := mkStudent(t, db, email, "S-100"+string(rune('1'+i)))
		_, err := AddStudentToClass(db, class.ID, s.ID)
		require.NoError(t, err)
	}

	got, err := GetClassByID(db, class.ID)
	require.NoError(t, err)
	require.Len(t, got.Students, 3)
}

func TestRemoveStudentFromClassIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	class := mkClass(t, db, "7A", nil)
	s := mkStudent(t, db, "a@example.com", "S-1001")

	_, err := AddStudentToClass(db, class.ID, s.ID)
	require.NoError(t, err)

	got, err := RemoveStudentFromClass(db, class.ID, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Students, 0)

	got, err = RemoveStudentFromClass(db, class.ID, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Students, 0)
}

func TestAssignClassTeacherSetsFlagAndBackReference(t *testing.T) {
	db := openTestDB(t)

	class := mkClass(t, db, "7A", nil)
	teacher := mkTeacher(t, db, "budi@example.com", "T-2001")

	got, err := AssignClassTeacher(db, class.ID, teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ClassTeacherID)
	require.Equal(t, teacher.ID, *got.ClassTeacherID)

	stored, err := GetTeacherByID(db, teacher.ID)
	require.NoError(t, err)
	require.True(t, stored.IsClassTeacher)
	require.NotNil(t, stored.MainClass)
	require.Equal(t, class.ID, stored.MainClass.ID)
}

func TestAssignClassTeacherReassignmentClearsPreviousHolder(t *testing.T) {
	db := openTestDB(t)

	class := mkClass(t, db, "7A", nil)
	first := mkTeacher(t, db, "first@example.com", "T-2001")
	second := mkTeacher(t, db, "second@example.com", "T-2002")

	_, err := AssignClassTeacher(db, class.ID, first.ID)
	require.NoError(t, err)
	_, err = AssignClassTeacher(db, class.ID, second.ID)
	require.NoError(t, err)

	prev, err := GetTeacherByID(db, first.ID)
	require.NoError(t, err)
	require.False(t, prev.IsClassTeacher)
	require.Nil(t, prev.MainClass)

	curr, err := GetTeacherByID(db, second.ID)
	require.NoError(t, err)
	require.True(t, curr.IsClassTeacher)
}

func TestAssignClassTeacherMovesTeacherBetweenClasses(t *testing.T) {
	db := openTestDB(t)

	classA := mkClass(t, db, "7A", nil)
	classB := mkClass(t, db, "7B", nil)
	teacher := mkTeacher(t, db, "budi@example.com", "T-2001")

	_, err := AssignClassTeacher(db, classA.ID, teacher.ID)
	require.NoError(t, err)

	// A teacher leads at most one class: taking 7B releases 7A.
	_, err = AssignClassTeacher(db, classB.ID, teacher.ID)
	require.NoError(t, err)

	a, err := GetClassByID(db, classA.ID)
	require.NoError(t, err)
	require.Nil(t, a.ClassTeacherID)

	b, err := GetClassByID(db, classB.ID)
	require.NoError(t, err)
	require.NotNil(t, b.ClassTeacherID)
	require.Equal(t, teacher.ID, *b.ClassTeacherID)
}

func TestAssignAndRemoveSubjectOnClass(t *testing.T) {
	db := openTestDB(t)

	class := mkClass(t, db, "7A", nil)
	subject := mkSubject(t, db, "MATH-7")

	got, err := AssignSubjectToClass(db, class.ID, subject.ID)
	require.NoError(t, err)
	require.Len(t, got.Subjects, 1)

	// Idempotent add.
	got, err = AssignSubjectToClass(db, class.ID, subject.ID)
	require.NoError(t, err)
	require.Len(t, got.Subjects, 1)

	got, err = RemoveSubjectFromClass(db, class.ID, subject.ID)
	require.NoError(t, err)
	require.Len(t, got.Subjects, 0)

	// Idempotent remove.
	got, err = RemoveSubjectFromClass(db, class.ID, subject.ID)
	require.NoError(t, err)
	require.Len(t, got.Subjects, 0)
}
