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

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

// GET /api/a/subjects
func (h *SubjectController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "code", "asc", helper.AdminOpts)
	rows, total, err := academicService.ListSubjects(h.DB.WithContext(c.Context()), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "", academicDTO.NewSubjectResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/subjects/by-grade/:grade_level
func (h *SubjectController) ListByGradeLevel(c *fiber.Ctx) error {
	grade, err := strconv.Atoi(c.Params("grade_level"))
	if err != nil || grade < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade level")
	}
	rows, err := academicService.ListSubjectsByGradeLevel(h.DB.WithContext(c.Context()), grade)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewSubjectResponses(rows))
}

// GET /api/a/subjects/by-teacher/:teacher_id
func (h *SubjectController) ListByTeacher(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacher_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	rows, err := academicService.ListSubjectsByTeacher(h.DB.WithContext(c.Context()), teacherID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewSubjectResponses(rows))
}

// GET /api/a/subjects/:id
func (h *SubjectController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	m, err := academicService.GetSubjectByID(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", academicDTO.NewSubjectResponse(m))
}

// POST /api/a/subjects
func (h *SubjectController) Create(c *fiber.Ctx) error {
	var req academicDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.CreateSubject(h.DB.WithContext(c.Context()), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Subject created", academicDTO.NewSubjectResponse(m))
}

// PATCH /api/a/subjects/:id
func (h *SubjectController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	var req academicDTO.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := academicService.UpdateSubject(h.DB.WithContext(c.Context()), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subject updated", academicDTO.NewSubjectResponse(m))
}

// DELETE /api/a/subjects/:id
func (h *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	m, err := academicService.SoftDeleteSubject(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Subject deactivated", academicDTO.NewSubjectResponse(m))
}

// POST /api/a/subjects/:id/teachers/:teacher_id
func (h *SubjectController) AssignTeacher(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	teacherID, err := uuid.Parse(c.Params("teacher_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	m, err := academicService.AssignTeacherToSubject(h.DB.WithContext(c.Context()), subjectID, teacherID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Teacher assigned", academicDTO.NewSubjectResponse(m))
}

// DELETE /api/a/subjects/:id/teachers/:teacher_id
func (h *SubjectController) RemoveTeacher(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}
	teacherID, err := uuid.Parse(c.Params("teacher_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	m, err := academicService.RemoveTeacherFromSubject(h.DB.WithContext(c.Context()), subjectID, teacherID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Teacher removed", academicDTO.NewSubjectResponse(m))
}
