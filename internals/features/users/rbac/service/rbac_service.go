package service

import (
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	rbacDTO "school_backend/internals/features/users/rbac/dto"
	rbacModel "school_backend/internals/features/users/rbac/model"
	helper "school_backend/internals/helpers"
)

var validate = validator.New()

/* ===================== ROLES ===================== */

func ListRoles(db *gorm.DB) ([]rbacModel.RoleModel, error) {
	var rows []rbacModel.RoleModel
	if err := db.Preload("Permissions").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list roles")
	}
	return rows, nil
}

func GetRoleByID(db *gorm.DB, id uuid.UUID) (*rbacModel.RoleModel, error) {
	var m rbacModel.RoleModel
	if err := db.Preload("Permissions").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Role not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load role")
	}
	return &m, nil
}

func GetRoleByName(db *gorm.DB, name string) (*rbacModel.RoleModel, error) {
	var m rbacModel.RoleModel
	if err := db.Preload("Permissions").First(&m, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Role "+name+" not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load role")
	}
	return &m, nil
}

// ResolveRoles maps role names to role records; any unknown name fails
// the whole lookup with a 404.
func ResolveRoles(db *gorm.DB, names []string) ([]rbacModel.RoleModel, error) {
	out := make([]rbacModel.RoleModel, 0, len(names))
	for _, name := range names {
		r, err := GetRoleByName(db, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func CreateRole(db *gorm.DB, req *rbacDTO.CreateRoleRequest) (*rbacModel.RoleModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := db.Create(m).Error; err != nil {
		return nil, helper.MapDBError(err, "Role name already exists")
	}
	return m, nil
}

func UpdateRole(db *gorm.DB, id uuid.UUID, req *rbacDTO.UpdateRoleRequest) (*rbacModel.RoleModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := GetRoleByID(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := db.Omit("Permissions").Save(m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update role")
	}
	return m, nil
}

// SoftDeleteRole flips is_active off; existing grants stay in place for
// audit. Idempotent.
func SoftDeleteRole(db *gorm.DB, id uuid.UUID) (*rbacModel.RoleModel, error) {
	m, err := GetRoleByID(db, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return m, nil
	}
	if err := db.Model(m).Update("is_active", false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate role")
	}
	m.IsActive = false
	return m, nil
}

/* ===================== PERMISSIONS ===================== */

func ListPermissions(db *gorm.DB) ([]rbacModel.PermissionModel, error) {
	var rows []rbacModel.PermissionModel
	if err := db.Order("resource_name ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list permissions")
	}
	return rows, nil
}

func GetPermissionByID(db *gorm.DB, id uuid.UUID) (*rbacModel.PermissionModel, error) {
	var m rbacModel.PermissionModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Permission not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load permission")
	}
	return &m, nil
}

func CreatePermission(db *gorm.DB, req *rbacDTO.CreatePermissionRequest) (*rbacModel.PermissionModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := db.Create(m).Error; err != nil {
		return nil, helper.MapDBError(err, "Permission name already exists")
	}
	return m, nil
}

func UpdatePermission(db *gorm.DB, id uuid.UUID, req *rbacDTO.UpdatePermissionRequest) (*rbacModel.PermissionModel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := GetPermissionByID(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := db.Save(m).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update permission")
	}
	return m, nil
}

// SoftDeletePermission flips is_active off; rows granting it stay in
// place for audit. Idempotent.
func SoftDeletePermission(db *gorm.DB, id uuid.UUID) (*rbacModel.PermissionModel, error) {
	m, err := GetPermissionByID(db, id)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return m, nil
	}
	if err := db.Model(m).Update("is_active", false).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate permission")
	}
	m.IsActive = false
	return m, nil
}

/* ===================== GRANTS ===================== */

// GrantPermission adds a permission to a role's set. Granting an
// already-held permission is a no-op (set semantics).
func GrantPermission(db *gorm.DB, roleID, permissionID uuid.UUID) (*rbacModel.RoleModel, error) {
	var role *rbacModel.RoleModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		role, err = GetRoleByID(tx, roleID)
		if err != nil {
			return err
		}
		perm, err := GetPermissionByID(tx, permissionID)
		if err != nil {
			return err
		}
		if err := tx.Model(role).Association("Permissions").Append(perm); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to grant permission")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetRoleByID(db, roleID)
}

// RevokePermission removes a permission from a role's set. Revoking a
// permission the role does not hold is a no-op, not an error.
func RevokePermission(db *gorm.DB, roleID, permissionID uuid.UUID) (*rbacModel.RoleModel, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		role, err := GetRoleByID(tx, roleID)
		if err != nil {
			return err
		}
		perm, err := GetPermissionByID(tx, permissionID)
		if err != nil {
			return err
		}
		if err := tx.Model(role).Association("Permissions").Delete(perm); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke permission")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetRoleByID(db, roleID)
}

/* ===================== MATERIALIZED SET ===================== */

// PermissionsForUser returns the deduplicated union of the permissions
// of all roles granted to a user, resolved in one query. This is the
// set put into the access token claims at login.
func PermissionsForUser(db *gorm.DB, userID uuid.UUID) ([]rbacModel.PermissionModel, error) {
	var rows []rbacModel.PermissionModel
	if err := db.
		Distinct("permissions.*").
		Table("permissions").
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Joins("JOIN user_roles ur ON ur.role_id = rp.role_id").
		Where("ur.user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve permissions")
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key() < rows[j].Key() })
	return rows, nil
}

// PermissionKeysForUser is PermissionsForUser reduced to the
// "RESOURCE:TYPE" claim entries.
func PermissionKeysForUser(db *gorm.DB, userID uuid.UUID) ([]string, error) {
	perms, err := PermissionsForUser(db, userID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(perms))
	for i := range perms {
		keys = append(keys, perms[i].Key())
	}
	return keys, nil
}
