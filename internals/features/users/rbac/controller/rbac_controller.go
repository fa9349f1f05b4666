package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	rbacDTO "school_backend/internals/features/users/rbac/dto"
	rbacService "school_backend/internals/features/users/rbac/service"
	helper "school_backend/internals/helpers"
)

type RBACController struct {
	DB *gorm.DB
}

func NewRBACController(db *gorm.DB) *RBACController {
	return &RBACController{DB: db}
}

/* ===================== ROLES ===================== */

// GET /api/a/roles
func (h *RBACController) ListRoles(c *fiber.Ctx) error {
	rows, err := rbacService.ListRoles(h.DB.WithContext(c.Context()))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", rbacDTO.NewRoleResponses(rows))
}

// GET /api/a/roles/:id
func (h *RBACController) DetailRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}
	m, err := rbacService.GetRoleByID(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", rbacDTO.NewRoleResponse(m))
}

// POST /api/a/roles
func (h *RBACController) CreateRole(c *fiber.Ctx) error {
	var req rbacDTO.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := rbacService.CreateRole(h.DB.WithContext(c.Context()), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Role created", rbacDTO.NewRoleResponse(m))
}

// PATCH /api/a/roles/:id
func (h *RBACController) UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}
	var req rbacDTO.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := rbacService.UpdateRole(h.DB.WithContext(c.Context()), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Role updated", rbacDTO.NewRoleResponse(m))
}

// DELETE /api/a/roles/:id
func (h *RBACController) DeleteRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}
	m, err := rbacService.SoftDeleteRole(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Role deactivated", rbacDTO.NewRoleResponse(m))
}

/* ===================== PERMISSIONS ===================== */

// GET /api/a/permissions
func (h *RBACController) ListPermissions(c *fiber.Ctx) error {
	rows, err := rbacService.ListPermissions(h.DB.WithContext(c.Context()))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", rbacDTO.NewPermissionResponses(rows))
}

// POST /api/a/permissions
func (h *RBACController) CreatePermission(c *fiber.Ctx) error {
	var req rbacDTO.CreatePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := rbacService.CreatePermission(h.DB.WithContext(c.Context()), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Permission created", rbacDTO.NewPermissionResponse(m))
}

// GET /api/a/permissions/:id
func (h *RBACController) DetailPermission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid permission id")
	}
	m, err := rbacService.GetPermissionByID(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", rbacDTO.NewPermissionResponse(m))
}

// PATCH /api/a/permissions/:id
func (h *RBACController) UpdatePermission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid permission id")
	}
	var req rbacDTO.UpdatePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := rbacService.UpdatePermission(h.DB.WithContext(c.Context()), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Permission updated", rbacDTO.NewPermissionResponse(m))
}

// DELETE /api/a/permissions/:id
func (h *RBACController) DeletePermission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid permission id")
	}
	m, err := rbacService.SoftDeletePermission(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Permission deactivated", rbacDTO.NewPermissionResponse(m))
}

/* ===================== GRANTS ===================== */

// POST /api/a/roles/:id/permissions/:permission_id
func (h *RBACController) GrantPermission(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}
	permID, err := uuid.Parse(c.Params("permission_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid permission id")
	}
	m, err := rbacService.GrantPermission(h.DB.WithContext(c.Context()), roleID, permID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Permission granted", rbacDTO.NewRoleResponse(m))
}

// DELETE /api/a/roles/:id/permissions/:permission_id
func (h *RBACController) RevokePermission(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role id")
	}
	permID, err := uuid.Parse(c.Params("permission_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid permission id")
	}
	m, err := rbacService.RevokePermission(h.DB.WithContext(c.Context()), roleID, permID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Permission revoked", rbacDTO.NewRoleResponse(m))
}
