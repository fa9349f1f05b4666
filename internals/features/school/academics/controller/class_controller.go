package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicDTO "school_backend/internals/features/school/academics/dto"
	academicService "school_backend/internals/features/school/academics/service"
	helper "school_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

// GET /api/a/classes
func (h *ClassController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.AdminOpts)
	rows, total, err := academicService.ListClasses(h.DB.WithContext(c.Context()), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "", academicDTO.NewClassResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/classes/by-grade/:grade_level
func (h *ClassController) ListByGradeLevel(c *fiber.Ctx) error {
	grade, err := strconv.Atoi(c.Params("grade_level"))
	if err != nil || grade < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade level")
	}
	rows, err := academicService.ListClassesByGradeLevel(h.DB.WithContext(c.Context()), grade)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewClassResponses(rows))
}

// GET /api/a/classes/by-teacher/:teacher_id
func (h *ClassController) ListByTeacher(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacher_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	rows, err := academicService.ListClassesByTeacher(h.DB.WithContext(c.Context()), teacherID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewClassResponses(rows))
}

// GET /api/a/classes/:id
func (h *ClassController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	m, err := academicService.GetClassByID(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewClassResponse(m))
}

// POST /api/a/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req academicDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.CreateClass(h.DB.WithContext(c.Context()), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Class created", academicDTO.NewClassResponse(m))
}

// PATCH /api/a/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	var req academicDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.UpdateClass(h.DB.WithContext(c.Context()), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Class updated", academicDTO.NewClassResponse(m))
}

// DELETE /api/a/classes/:id
func (h *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	m, err := academicService.SoftDeleteClass(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Class deactivated", academicDTO.NewClassResponse(m))
}

// PUT /api/a/classes/:id/class-teacher/:teacher_id
func (h *ClassController) AssignClassTeacher(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	teacherID, err := uuid.Parse(c.Params("teacher_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	m, err := academicService.AssignClassTeacher(h.DB.WithContext(c.Context()), classID, teacherID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Class teacher assigned", academicDTO.NewClassResponse(m))
}

// POST /api/a/classes/:id/students/:student_id
func (h *ClassController) AddStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	m, err := academicService.AddStudentToClass(h.DB.WithContext(c.Context()), classID, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Student enrolled", academicDTO.NewClassResponse(m))
}

// DELETE /api/a/classes/:id/students/:student_id
func (h *ClassController) RemoveStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	m, err := academicService.RemoveStudentFromClass(h.DB.WithContext(c.Context()), classID, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Student removed", academicDTO.NewClassResponse(m))
}

// POST /api/a/classes/:id/subjects/:subject_id
func (h *ClassController) AssignSubject(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	subjectID, err := uuid.Parse(c.Params("subject_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	m, err := academicService.AssignSubjectToClass(h.DB.WithContext(c.Context()), classID, subjectID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subject assigned", academicDTO.NewClassResponse(m))
}

// DELETE /api/a/classes/:id/subjects/:subject_id
func (h *ClassController) RemoveSubject(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	subjectID, err := uuid.Parse(c.Params("subject_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	m, err := academicService.RemoveSubjectFromClass(h.DB.WithContext(c.Context()), classID, subjectID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subject removed", academicDTO.NewClassResponse(m))
}
