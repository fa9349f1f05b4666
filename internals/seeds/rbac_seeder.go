package seeds

import (
	"log"

	"gorm.io/gorm"

	"school_backend/internals/constants"
	rbacModel "school_backend/internals/features/users/rbac/model"
)

var seedResources = []string{
	constants.ResourceUsers,
	constants.ResourceRoles,
	constants.ResourceStudents,
	constants.ResourceTeachers,
	constants.ResourceSubjects,
	constants.ResourceClasses,
}

// roleGrants maps each role to the permission types it gets on every
// resource. Admin holds MANAGE everywhere, which implies the rest.
var roleGrants = map[string][]rbacModel.PermissionType{
	constants.RoleAdmin:   {rbacModel.PermissionManage},
	constants.RoleTeacher: {rbacModel.PermissionRead},
	constants.RoleStudent: {rbacModel.PermissionRead},
}

// SeedRBAC creates the base roles and the full permission matrix.
// Idempotent: every row goes through FirstOrCreate, so reruns on boot
// never duplicate or overwrite manual grants.
func SeedRBAC(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		perms := map[string]*rbacModel.PermissionModel{}
		for _, resource := range seedResources {
			for _, typ := range []rbacModel.PermissionType{
				rbacModel.PermissionCreate,
				rbacModel.PermissionRead,
				rbacModel.PermissionUpdate,
				rbacModel.PermissionDelete,
				rbacModel.PermissionManage,
			} {
				p := rbacModel.PermissionModel{
					Name:         resource + ":" + string(typ),
					ResourceName: resource,
					Type:         typ,
					IsActive:     true,
				}
				if err := tx.Where("name = ?", p.Name).
					FirstOrCreate(&p).Error; err != nil {
					return err
				}
				perms[p.Name] = &p
			}
		}

		for roleName, types := range roleGrants {
			role := rbacModel.RoleModel{Name: roleName, IsActive: true}
			if err := tx.Where("name = ?", roleName).
				FirstOrCreate(&role).Error; err != nil {
				return err
			}
			for _, resource := range seedResources {
				for _, typ := range types {
					p := perms[resource+":"+string(typ)]
					if err := tx.Model(&role).
						Association("Permissions").Append(p); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// RunAllSeeds is called once on boot after the DB is reachable.
func RunAllSeeds(db *gorm.DB) {
	if err := SeedRBAC(db); err != nil {
		log.Printf("[ERROR] RBAC seed failed: %v", err)
		return
	}
	log.Println("[INFO] RBAC seed complete")
}
