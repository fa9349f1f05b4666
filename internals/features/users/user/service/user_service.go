package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userDTO "school_backend/internals/features/users/user/dto"
	userModel "school_backend/internals/features/users/user/model"
	helper "school_backend/internals/helpers"
)

var validate = validator.New()

// List returns one ordered page of accounts, active and inactive alike.
// Callers filter on is_active if they need to.
func List(db *gorm.DB, p helper.Params) ([]userModel.UserModel, int64, error) {
	orderExpr, err := p.SafeOrderExpr(map[string]string{
		"created_at": "created_at",
		"email":      "lower(email)",
		"last_name":  "lower(last_name)",
	}, "created_at")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(&userModel.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []userModel.UserModel
	if err := db.
		Preload("Roles.Permissions").
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list users")
	}
	return rows, total, nil
}

func GetByID(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var m userModel.UserModel
	if err := db.Preload("Roles.Permissions").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	return &m, nil
}

func GetByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var m userModel.UserModel
	if err := db.Preload("Roles.Permissions").First(&m, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	return &m, nil
}

func Update(db *gorm.DB, id uuid.UUID, req *userDTO.UpdateUserRequest) (*userModel.UserModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := db.Omit("Roles").Save(m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
	}
	return m, nil
}

// Deactivate flips is_active off. Deactivating an already-inactive
// account is a no-op success, not an error.
func Deactivate(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	m, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return m, nil
	}
	if err := db.Model(m).Update("is_active", false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	m.IsActive = false
	return m, nil
}
