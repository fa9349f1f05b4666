package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicDTO "school_backend/internals/features/school/academics/dto"
	academicModel "school_backend/internals/features/school/academics/model"
	helper "school_backend/internals/helpers"
)

var subjectSortable = map[string]string{
	"created_at":  "created_at",
	"code":        "code",
	"name":        "lower(name)",
	"grade_level": "grade_level",
}

func ListSubjects(db *gorm.DB, p helper.Params) ([]academicModel.SubjectModel, int64, error) {
	orderExpr, err := p.SafeOrderExpr(subjectSortable, "code")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(&academicModel.SubjectModel{}).Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count subjects")
	}

	var rows []academicModel.SubjectModel
	if err := db.
		Preload("Teachers").
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return rows, total, nil
}

func ListSubjectsByGradeLevel(db *gorm.DB, gradeLevel int) ([]academicModel.SubjectModel, error) {
	var rows []academicModel.SubjectModel
	if err := db.
		Where("grade_level = ?", gradeLevel).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return rows, nil
}

func ListSubjectsByTeacher(db *gorm.DB, teacherID uuid.UUID) ([]academicModel.SubjectModel, error) {
	if _, err := GetTeacherByID(db, teacherID); err != nil {
		return nil, err
	}
	var rows []academicModel.SubjectModel
	if err := db.
		Joins("JOIN teacher_subjects ts ON ts.subject_id = subjects.id").
		Where("ts.teacher_id = ?", teacherID).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return rows, nil
}

func GetSubjectByID(db *gorm.DB, id uuid.UUID) (*academicModel.SubjectModel, error) {
	var m academicModel.SubjectModel
	if err := db.Preload("Teachers").Preload("Classes").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load subject")
	}
	return &m, nil
}

func CreateSubject(db *gorm.DB, req *academicDTO.CreateSubjectRequest) (*academicModel.SubjectModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := db.Create(m).Error; err != nil {
		return nil, helper.MapDBError(err, "Subject code already exists")
	}
	return m, nil
}

func UpdateSubject(db *gorm.DB, id uuid.UUID, req *academicDTO.UpdateSubjectRequest) (*academicModel.SubjectModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := GetSubjectByID(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := db.Omit("Teachers", "Classes").Save(m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update subject")
	}
	return m, nil
}

// SoftDeleteSubject flips is_active off; assignments stay for audit.
// Idempotent.
func SoftDeleteSubject(db *gorm.DB, id uuid.UUID) (*academicModel.SubjectModel, error) {
	m, err := GetSubjectByID(db, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return m, nil
	}
	if err := db.Model(m).Update("is_active", false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate subject")
	}
	m.IsActive = false
	return m, nil
}

/* ===================== TEACHER LINKS ===================== */

// AssignTeacherToSubject links both sides of the relation in one
// transaction. Assigning an existing link is a no-op (set semantics).
func AssignTeacherToSubject(db *gorm.DB, subjectID, teacherID uuid.UUID) (*academicModel.SubjectModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		subject, err := GetSubjectByID(tx, subjectID)
		if err != nil {
			return err
		}
		teacher, err := GetTeacherByID(tx, teacherID)
		if err != nil {
			return err
		}
		if err := tx.Model(subject).Association("Teachers").Append(teacher); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign teacher")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetSubjectByID(db, subjectID)
}

// RemoveTeacherFromSubject unlinks both sides. Removing a missing link
// is a no-op, not an error.
func RemoveTeacherFromSubject(db *gorm.DB, subjectID, teacherID uuid.UUID) (*academicModel.SubjectModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		subject, err := GetSubjectByID(tx, subjectID)
		if err != nil {
			return err
		}
		teacher, err := GetTeacherByID(tx, teacherID)
		if err != nil {
			return err
		}
		if err := tx.Model(subject).Association("Teachers").Delete(teacher); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove teacher")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetSubjectByID(db, subjectID)
}
