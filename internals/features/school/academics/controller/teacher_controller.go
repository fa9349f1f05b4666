package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicDTO "school_backend/internals/features/school/academics/dto"
	academicService "school_backend/internals/features/school/academics/service"
	helper "school_backend/internals/helpers"
)

type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

// GET /api/a/teachers
func (h *TeacherController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := academicService.ListTeachers(h.DB.WithContext(c.Context()), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "", academicDTO.NewTeacherResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/teachers/by-subject/:subject_id
func (h *TeacherController) ListBySubject(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(c.Params("subject_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	rows, err := academicService.ListTeachersBySubject(h.DB.WithContext(c.Context()), subjectID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewTeacherResponses(rows))
}

// GET /api/a/teachers/by-class/:class_id
func (h *TeacherController) ListByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	rows, err := academicService.ListTeachersByClass(h.DB.WithContext(c.Context()), classID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewTeacherResponses(rows))
}

// GET /api/a/teachers/:id
func (h *TeacherController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	m, err := academicService.GetTeacherByID(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewTeacherResponse(m))
}

// GET /api/a/teachers/by-employee-id/:employee_id
func (h *TeacherController) DetailByEmployeeID(c *fiber.Ctx) error {
	m, err := academicService.GetTeacherByEmployeeID(h.DB.WithContext(c.Context()), c.Params("employee_id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewTeacherResponse(m))
}

// POST /api/a/teachers
func (h *TeacherController) Create(c *fiber.Ctx) error {
	var req academicDTO.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.CreateTeacher(h.DB.WithContext(c.Context()), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Teacher hired", academicDTO.NewTeacherResponse(m))
}

// PATCH /api/a/teachers/:id
func (h *TeacherController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	var req academicDTO.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.UpdateTeacher(h.DB.WithContext(c.Context()), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Teacher updated", academicDTO.NewTeacherResponse(m))
}

// DELETE /api/a/teachers/:id
func (h *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	m, err := academicService.SoftDeleteTeacher(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Teacher deactivated", academicDTO.NewTeacherResponse(m))
}
