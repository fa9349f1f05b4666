package constants

// Role names as seeded in the roles table.
const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleTeacher = "ROLE_TEACHER"
	RoleStudent = "ROLE_STUDENT"
)

// Resource names used by permission checks.
const (
	ResourceUsers    = "USERS"
	ResourceRoles    = "ROLES"
	ResourceStudents = "STUDENTS"
	ResourceTeachers = "TEACHERS"
	ResourceSubjects = "SUBJECTS"
	ResourceClasses  = "CLASSES"
)

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleStudent,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleTeacher,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
