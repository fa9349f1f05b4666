package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicDTO "school_backend/internals/features/school/academics/dto"
	academicModel "school_backend/internals/features/school/academics/model"
	helper "school_backend/internals/helpers"
)

// ErrClassCapacityExceeded is returned when an enrollment would push a
// class past max_students.
var ErrClassCapacityExceeded = fiber.NewError(fiber.StatusConflict, "Class capacity exceeded")

// lockForUpdate serializes concurrent writers on the selected rows.
// Sqlite has a single writer and no FOR UPDATE, so only postgres gets
// the clause.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

var classSortable = map[string]string{
	"created_at":  "created_at",
	"name":        "lower(name)",
	"grade_level": "grade_level",
}

func ListClasses(db *gorm.DB, p helper.Params) ([]academicModel.SchoolClassModel, int64, error) {
	orderExpr, err := p.SafeOrderExpr(classSortable, "name")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(&academicModel.SchoolClassModel{}).Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count classes")
	}

	var rows []academicModel.SchoolClassModel
	if err := db.
		Preload("ClassTeacher").
		Preload("Students").
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list classes")
	}
	return rows, total, nil
}

func ListClassesByGradeLevel(db *gorm.DB, gradeLevel int) ([]academicModel.SchoolClassModel, error) {
	var rows []academicModel.SchoolClassModel
	if err := db.
		Where("grade_level = ?", gradeLevel).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list classes")
	}
	return rows, nil
}

func ListClassesByTeacher(db *gorm.DB, teacherID uuid.UUID) ([]academicModel.SchoolClassModel, error) {
	if _, err := GetTeacherByID(db, teacherID); err != nil {
		return nil, err
	}
	var rows []academicModel.SchoolClassModel
	if err := db.
		Joins("JOIN teacher_classes tc ON tc.class_id = school_classes.id").
		Where("tc.teacher_id = ?", teacherID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list classes")
	}
	return rows, nil
}

func GetClassByID(db *gorm.DB, id uuid.UUID) (*academicModel.SchoolClassModel, error) {
	var m academicModel.SchoolClassModel
	if err := db.
		Preload("ClassTeacher").
		Preload("Students").
		Preload("Subjects").
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load class")
	}
	return &m, nil
}

func CreateClass(db *gorm.DB, req *academicDTO.CreateClassRequest) (*academicModel.SchoolClassModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := db.Create(m).Error; err != nil {
		return nil, helper.MapDBError(err, "Class already exists")
	}
	return m, nil
}

func UpdateClass(db *gorm.DB, id uuid.UUID, req *academicDTO.UpdateClassRequest) (*academicModel.SchoolClassModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := GetClassByID(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := db.Omit("ClassTeacher", "Students", "Subjects").Save(m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update class")
	}
	return m, nil
}

// SoftDeleteClass flips is_active off; members keep their class_id for
// audit. Idempotent.
func SoftDeleteClass(db *gorm.DB, id uuid.UUID) (*academicModel.SchoolClassModel, error) {
	m, err := GetClassByID(db, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return m, nil
	}
	if err := db.Model(m).Update("is_active", false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate class")
	}
	m.IsActive = false
	return m, nil
}

/* ===================== CLASS TEACHER ===================== */

// AssignClassTeacher designates a teacher as the class teacher. A
// teacher leads at most one class and a class has at most one leader,
// so the previous holder on either side is cleared in the same
// transaction before the new link is written.
func AssignClassTeacher(db *gorm.DB, classID, teacherID uuid.UUID) (*academicModel.SchoolClassModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var class academicModel.SchoolClassModel
		if err := lockForUpdate(tx).First(&class, "id = ?", classID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load class")
		}
		var teacher academicModel.TeacherModel
		if err := tx.First(&teacher, "id = ?", teacherID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load teacher")
		}

		if class.ClassTeacherID != nil && *class.ClassTeacherID == teacherID {
			return nil
		}

		// Previous leader of this class steps down.
		if class.ClassTeacherID != nil {
			if err := tx.Model(&academicModel.TeacherModel{}).
				Where("id = ?", *class.ClassTeacherID).
				Update("is_class_teacher", false).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear previous class teacher")
			}
		}

		// The new teacher leaves any class they currently lead; the
		// unique index on class_teacher_id would reject the link
		// otherwise.
		if err := tx.Model(&academicModel.SchoolClassModel{}).
			Where("class_teacher_id = ?", teacherID).
			Update("class_teacher_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to release previous class")
		}

		if err := tx.Model(&class).Update("class_teacher_id", teacherID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign class teacher")
		}
		if err := tx.Model(&teacher).Update("is_class_teacher", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to flag class teacher")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetClassByID(db, classID)
}

/* ===================== MEMBERSHIP ===================== */

// AddStudentToClass enrolls a student with a row-locked capacity check,
// so two concurrent enrollments cannot both pass on the last seat.
// Returns the re-read aggregate with the membership materialized.
func AddStudentToClass(db *gorm.DB, classID, studentID uuid.UUID) (*academicModel.SchoolClassModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var class academicModel.SchoolClassModel
		if err := lockForUpdate(tx).First(&class, "id = ?", classID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load class")
		}
		var student academicModel.StudentModel
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
		}

		if student.ClassID != nil && *student.ClassID == classID {
			return nil
		}

		if class.MaxStudents != nil {
			var enrolled int64
			if err := tx.Model(&academicModel.StudentModel{}).
				Where("class_id = ?", classID).
				Count(&enrolled).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to count members")
			}
			if enrolled >= int64(*class.MaxStudents) {
				return ErrClassCapacityExceeded
			}
		}

		if err := tx.Model(&student).Update("class_id", classID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to enroll student")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetClassByID(db, classID)
}

// RemoveStudentFromClass drops a student's membership. Removing a
// student who is not in the class is a no-op.
func RemoveStudentFromClass(db *gorm.DB, classID, studentID uuid.UUID) (*academicModel.SchoolClassModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetClassByID(tx, classID); err != nil {
			return err
		}
		var student academicModel.StudentModel
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
		}
		if student.ClassID == nil || *student.ClassID != classID {
			return nil
		}
		if err := tx.Model(&student).Update("class_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove student")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetClassByID(db, classID)
}

/* ===================== SUBJECT LINKS ===================== */

// AssignSubjectToClass adds a subject to the class curriculum.
// Idempotent set semantics.
func AssignSubjectToClass(db *gorm.DB, classID, subjectID uuid.UUID) (*academicModel.SchoolClassModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		class, err := GetClassByID(tx, classID)
		if err != nil {
			return err
		}
		subject, err := GetSubjectByID(tx, subjectID)
		if err != nil {
			return err
		}
		if err := tx.Model(class).Association("Subjects").Append(subject); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign subject")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetClassByID(db, classID)
}

// RemoveSubjectFromClass removes a subject from the curriculum; a
// missing link is a no-op.
func RemoveSubjectFromClass(db *gorm.DB, classID, subjectID uuid.UUID) (*academicModel.SchoolClassModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		class, err := GetClassByID(tx, classID)
		if err != nil {
			return err
		}
		subject, err := GetSubjectByID(tx, subjectID)
		if err != nil {
			return err
		}
		if err := tx.Model(class).Association("Subjects").Delete(subject); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove subject")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetClassByID(db, classID)
}
