package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicDTO "school_backend/internals/features/school/academics/dto"
	academicService "school_backend/internals/features/school/academics/service"
	helper "school_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// GET /api/a/students
func (h *StudentController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := academicService.ListStudents(h.DB.WithContext(c.Context()), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "", academicDTO.NewStudentResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/students/:id
func (h *StudentController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	m, err := academicService.GetStudentByID(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewStudentResponse(m))
}

// GET /api/a/students/by-student-id/:student_id
func (h *StudentController) DetailByStudentID(c *fiber.Ctx) error {
	m, err := academicService.GetStudentByStudentID(h.DB.WithContext(c.Context()), c.Params("student_id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewStudentResponse(m))
}

// POST /api/a/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req academicDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.CreateStudent(h.DB.WithContext(c.Context()), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Student admitted", academicDTO.NewStudentResponse(m))
}

// PATCH /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	var req academicDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.UpdateStudent(h.DB.WithContext(c.Context()), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Student updated", academicDTO.NewStudentResponse(m))
}

// DELETE /api/a/students/:id
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	m, err := academicService.SoftDeleteStudent(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Student deactivated", academicDTO.NewStudentResponse(m))
}
