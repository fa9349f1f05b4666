package auth

import (
	"github.com/gofiber/fiber/v2"

	rbacModel "school_backend/internals/features/users/rbac/model"
)

// RequirePermission passes only requests whose token carries the
// "RESOURCE:TYPE" key, or MANAGE on the same resource. The check runs
// against the claims materialized at login; no DB round trip.
func RequirePermission(resource string, typ rbacModel.PermissionType) fiber.Handler {
	want := resource + ":" + string(typ)
	manage := resource + ":" + string(rbacModel.PermissionManage)

	return func(c *fiber.Ctx) error {
		perms, ok := c.Locals("permissions").([]string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing permission information",
			})
		}
		for _, p := range perms {
			if p == want || p == manage {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: missing permission " + want,
		})
	}
}
