package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"school_backend/internals/constants"
	academicDTO "school_backend/internals/features/school/academics/dto"
	academicModel "school_backend/internals/features/school/academics/model"
	authService "school_backend/internals/features/users/auth/service"
	helper "school_backend/internals/helpers"
)

var validate = newValidator()

// past_date: a "2006-01-02" date strictly before today. Birth dates
// must carry it; plain datetime only checks the format.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("past_date", func(fl validator.FieldLevel) bool {
		d, err := time.Parse("2006-01-02", fl.Field().String())
		if err != nil {
			return false
		}
		return d.Before(time.Now())
	})
	return v
}

var studentSortable = map[string]string{
	"created_at":      "created_at",
	"student_id":      "student_id",
	"enrollment_date": "enrollment_date",
}

func ListStudents(db *gorm.DB, p helper.Params) ([]academicModel.StudentModel, int64, error) {
	orderExpr, err := p.SafeOrderExpr(studentSortable, "created_at")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(&academicModel.StudentModel{}).Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count students")
	}

	var rows []academicModel.StudentModel
	if err := db.
		Preload("User").
		Preload("Class").
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list students")
	}
	return rows, total, nil
}

func GetStudentByID(db *gorm.DB, id uuid.UUID) (*academicModel.StudentModel, error) {
	var m academicModel.StudentModel
	if err := db.Preload("User").Preload("Class").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}
	return &m, nil
}

// GetStudentByStudentID looks up by the natural key printed on the
// student card.
func GetStudentByStudentID(db *gorm.DB, studentID string) (*academicModel.StudentModel, error) {
	var m academicModel.StudentModel
	if err := db.Preload("User").Preload("Class").First(&m, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}
	return &m, nil
}

// CreateStudent admits a student: login account (ROLE_STUDENT) and
// profile in one transaction, so a duplicate student_id leaves no
// orphaned account behind.
func CreateStudent(db *gorm.DB, req *academicDTO.CreateStudentRequest) (*academicModel.StudentModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var created *academicModel.StudentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		u, err := authService.RegisterAccount(tx, &req.Account, []string{constants.RoleStudent})
		if err != nil {
			return err
		}
		m := req.ToModel(u.ID)
		if err := tx.Create(m).Error; err != nil {
			return helper.MapDBError(err, "Student ID already exists")
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetStudentByID(db, created.ID)
}

func UpdateStudent(db *gorm.DB, id uuid.UUID, req *academicDTO.UpdateStudentRequest) (*academicModel.StudentModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := GetStudentByID(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := db.Omit("User", "Class").Save(m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}
	return m, nil
}

// SoftDeleteStudent deactivates the profile and cascades the flag to
// the linked account. Idempotent.
func SoftDeleteStudent(db *gorm.DB, id uuid.UUID) (*academicModel.StudentModel, error) {
	m, err := GetStudentByID(db, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return m, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate student")
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
