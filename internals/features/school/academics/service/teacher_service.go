package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"school_backend/internals/constants"
	academicDTO "school_backend/internals/features/school/academics/dto"
	academicModel "school_backend/internals/features/school/academics/model"
	authService "school_backend/internals/features/users/auth/service"
	helper "school_backend/internals/helpers"
)

var teacherSortable = map[string]string{
	"created_at":  "created_at",
	"employee_id": "employee_id",
	"hire_date":   "hire_date",
}

func ListTeachers(db *gorm.DB, p helper.Params) ([]academicModel.TeacherModel, int64, error) {
	orderExpr, err := p.SafeOrderExpr(teacherSortable, "created_at")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(&academicModel.TeacherModel{}).Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count teachers")
	}

	var rows []academicModel.TeacherModel
	if err := db.
		Preload("User").
		Preload("Subjects").
		Preload("Classes").
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list teachers")
	}
	return rows, total, nil
}

// ListTeachersBySubject returns all teachers assigned to a subject.
func ListTeachersBySubject(db *gorm.DB, subjectID uuid.UUID) ([]academicModel.TeacherModel, error) {
	if _, err := GetSubjectByID(db, subjectID); err != nil {
		return nil, err
	}
	var rows []academicModel.TeacherModel
	if err := db.
		Joins("JOIN teacher_subjects ts ON ts.teacher_id = teachers.id").
		Where("ts.subject_id = ?", subjectID).
		Order("employee_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list teachers")
	}
	return rows, nil
}

// ListTeachersByClass returns all teachers teaching in a class.
func ListTeachersByClass(db *gorm.DB, classID uuid.UUID) ([]academicModel.TeacherModel, error) {
	if _, err := GetClassByID(db, classID); err != nil {
		return nil, err
	}
	var rows []academicModel.TeacherModel
	if err := db.
		Joins("JOIN teacher_classes tc ON tc.teacher_id = teachers.id").
		Where("tc.class_id = ?", classID).
		Order("employee_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list teachers")
	}
	return rows, nil
}

func GetTeacherByID(db *gorm.DB, id uuid.UUID) (*academicModel.TeacherModel, error) {
	var m academicModel.TeacherModel
	if err := db.
		Preload("User").
		Preload("Subjects").
		Preload("Classes").
		Preload("MainClass").
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load teacher")
	}
	return &m, nil
}

// GetTeacherByEmployeeID looks up by the natural key from HR.
func GetTeacherByEmployeeID(db *gorm.DB, employeeID string) (*academicModel.TeacherModel, error) {
	var m academicModel.TeacherModel
	if err := db.
		Preload("User").
		Preload("Subjects").
		Preload("Classes").
		First(&m, "employee_id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load teacher")
	}
	return &m, nil
}

// CreateTeacher hires a teacher: login account (ROLE_TEACHER) and
// profile in one transaction.
func CreateTeacher(db *gorm.DB, req *academicDTO.CreateTeacherRequest) (*academicModel.TeacherModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var created *academicModel.TeacherModel
	err := db.Transaction(func(tx *gorm.DB) error {
		u, err := authService.RegisterAccount(tx, &req.Account, []string{constants.RoleTeacher})
		if err != nil {
			return err
		}
		m := req.ToModel(u.ID)
		if err := tx.Create(m).Error; err != nil {
			return helper.MapDBError(err, "Employee ID already exists")
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetTeacherByID(db, created.ID)
}

func UpdateTeacher(db *gorm.DB, id uuid.UUID, req *academicDTO.UpdateTeacherRequest) (*academicModel.TeacherModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := GetTeacherByID(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := db.Omit("Subjects", "Classes", "MainClass", "User").Save(m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update teacher")
	}
	return m, nil
}

// SoftDeleteTeacher deactivates the profile and cascades the flag to
// the linked account. Idempotent.
func SoftDeleteTeacher(db *gorm.DB, id uuid.UUID) (*academicModel.TeacherModel, error) {
	m, err := GetTeacherByID(db, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return m, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate teacher")
		}
		if m.UserID != nil {
			if err := tx.Table("users").Where("id = ?", *m.UserID).
				Update("is_active", false).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate account")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.IsActive = false
	return m, nil
}
