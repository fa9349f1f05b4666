package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"school_backend/internals/constants"
	academicController "school_backend/internals/features/school/academics/controller"
	rbacModel "school_backend/internals/features/users/rbac/model"
	authMw "school_backend/internals/middlewares/auth"
)

// SchoolAdminRoutes mounts the directory under the admin group. Reads
// need READ on the resource, writes the matching CREATE/UPDATE/DELETE;
// MANAGE always passes.
func SchoolAdminRoutes(admin fiber.Router, db *gorm.DB) {
	studentCtrl := academicController.NewStudentController(db)
	teacherCtrl := academicController.NewTeacherController(db)
	subjectCtrl := academicController.NewSubjectController(db)
	classCtrl := academicController.NewClassController(db)

	/* ===================== STUDENTS ===================== */
	students := admin.Group("/students")
	students.Get("/", authMw.RequirePermission(constants.ResourceStudents, rbacModel.PermissionRead), studentCtrl.List)
	students.Get("/by-student-id/:student_id", authMw.RequirePermission(constants.ResourceStudents, rbacModel.PermissionRead), studentCtrl.DetailByStudentID)
	students.Get("/:id", authMw.RequirePermission(constants.ResourceStudents, rbacModel.PermissionRead), studentCtrl.Detail)
	students.Post("/", authMw.RequirePermission(constants.ResourceStudents, rbacModel.PermissionCreate), studentCtrl.Create)
	students.Patch("/:id", authMw.RequirePermission(constants.ResourceStudents, rbacModel.PermissionUpdate), studentCtrl.Update)
	students.Delete("/:id", authMw.RequirePermission(constants.ResourceStudents, rbacModel.PermissionDelete), studentCtrl.Delete)

	/* ===================== TEACHERS ===================== */
	teachers := admin.Group("/teachers")
	teachers.Get("/", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionRead), teacherCtrl.List)
	teachers.Get("/by-subject/:subject_id", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionRead), teacherCtrl.ListBySubject)
	teachers.Get("/by-class/:class_id", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionRead), teacherCtrl.ListByClass)
	teachers.Get("/by-employee-id/:employee_id", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionRead), teacherCtrl.DetailByEmployeeID)
	teachers.Get("/:id", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionRead), teacherCtrl.Detail)
	teachers.Post("/", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionCreate), teacherCtrl.Create)
	teachers.Patch("/:id", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionUpdate), teacherCtrl.Update)
	teachers.Delete("/:id", authMw.RequirePermission(constants.ResourceTeachers, rbacModel.PermissionDelete), teacherCtrl.Delete)

	/* ===================== SUBJECTS ===================== */
	subjects := admin.Group("/subjects")
	subjects.Get("/", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionRead), subjectCtrl.List)
	subjects.Get("/by-grade/:grade_level", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionRead), subjectCtrl.ListByGradeLevel)
	subjects.Get("/by-teacher/:teacher_id", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionRead), subjectCtrl.ListByTeacher)
	subjects.Get("/:id", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionRead), subjectCtrl.Detail)
	subjects.Post("/", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionCreate), subjectCtrl.Create)
	subjects.Patch("/:id", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionUpdate), subjectCtrl.Update)
	subjects.Delete("/:id", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionDelete), subjectCtrl.Delete)
	subjects.Post("/:id/teachers/:teacher_id", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionUpdate), subjectCtrl.AssignTeacher)
	subjects.Delete("/:id/teachers/:teacher_id", authMw.RequirePermission(constants.ResourceSubjects, rbacModel.PermissionUpdate), subjectCtrl.RemoveTeacher)

	/* ===================== CLASSES ===================== */
	classes := admin.Group("/classes")
	classes.Get("/", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionRead), classCtrl.List)
	classes.Get("/by-grade/:grade_level", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionRead), classCtrl.ListByGradeLevel)
	classes.Get("/by-teacher/:teacher_id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionRead), classCtrl.ListByTeacher)
	classes.Get("/:id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionRead), classCtrl.Detail)
	classes.Post("/", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionCreate), classCtrl.Create)
	classes.Patch("/:id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionUpdate), classCtrl.Update)
	classes.Delete("/:id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionDelete), classCtrl.Delete)
	classes.Put("/:id/class-teacher/:teacher_id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionUpdate), classCtrl.AssignClassTeacher)
	classes.Post("/:id/students/:student_id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionUpdate), classCtrl.AddStudent)
	classes.Delete("/:id/students/:student_id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionUpdate), classCtrl.RemoveStudent)
	classes.Post("/:id/subjects/:subject_id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionUpdate), classCtrl.AssignSubject)
	classes.Delete("/:id/subjects/:subject_id", authMw.RequirePermission(constants.ResourceClasses, rbacModel.PermissionUpdate), classCtrl.RemoveSubject)
}
