package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"school_backend/internals/constants"
	rbacController "school_backend/internals/features/users/rbac/controller"
	rbacModel "school_backend/internals/features/users/rbac/model"
	userController "school_backend/internals/features/users/user/controller"
	authMw "school_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts account and RBAC administration under the
// admin group; the group already runs AuthMiddleware.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userCtrl := userController.NewUserController(db)

	users := admin.Group("/users")
	users.Get("/", authMw.RequirePermission(constants.ResourceUsers, rbacModel.PermissionRead), userCtrl.List)
	users.Get("/:id", authMw.RequirePermission(constants.ResourceUsers, rbacModel.PermissionRead), userCtrl.Detail)
	users.Patch("/:id", authMw.RequirePermission(constants.ResourceUsers, rbacModel.PermissionUpdate), userCtrl.Update)
	users.Delete("/:id", authMw.RequirePermission(constants.ResourceUsers, rbacModel.PermissionDelete), userCtrl.Deactivate)

	rbacCtrl := rbacController.NewRBACController(db)

	// Role and permission administration requires MANAGE on ROLES.
	roles := admin.Group("/roles", authMw.RequirePermission(constants.ResourceRoles, rbacModel.PermissionManage))
	roles.Get("/", rbacCtrl.ListRoles)
	roles.Post("/", rbacCtrl.CreateRole)
	roles.Get("/:id", rbacCtrl.DetailRole)
	roles.Patch("/:id", rbacCtrl.UpdateRole)
	roles.Delete("/:id", rbacCtrl.DeleteRole)
	roles.Post("/:id/permissions/:permission_id", rbacCtrl.GrantPermission)
	roles.Delete("/:id/permissions/:permission_id", rbacCtrl.RevokePermission)

	perms := admin.Group("/permissions", authMw.RequirePermission(constants.ResourceRoles, rbacModel.PermissionManage))
	perms.Get("/", rbacCtrl.ListPermissions)
	perms.Post("/", rbacCtrl.CreatePermission)
	perms.Get("/:id", rbacCtrl.DetailPermission)
	perms.Patch("/:id", rbacCtrl.UpdatePermission)
	perms.Delete("/:id", rbacCtrl.DeletePermission)
}
