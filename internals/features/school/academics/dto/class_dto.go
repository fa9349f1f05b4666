package dto

import (
	"time"

	"github.com/google/uuid"

	academicModel "school_backend/internals/features/school/academics/model"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	Name       string  `json:"name" validate:"required,max=50"`
	GradeLevel int     `json:"grade_level" validate:"required,min=1"`
	Section    *string `json:"section" validate:"omitempty,max=100"`

	MaxStudents *int `json:"max_students" validate:"omitempty,min=1"`

	Room         *string `json:"room" validate:"omitempty,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	AcademicYear *string `json:"academic_year" validate:"omitempty,max=20"`
}

func (r *CreateClassRequest) ToModel() *academicModel.SchoolClassModel {
	return &academicModel.SchoolClassModel{
		Name:         r.Name,
		GradeLevel:   r.GradeLevel,
		Section:      r.Section,
		MaxStudents:  r.MaxStudents,
		Room:         r.Room,
		Description:  r.Description,
		AcademicYear: r.AcademicYear,
		IsActive:     true,
	}
}

// UpdateClassRequest patches mutable fields; the class teacher and the
// membership are managed by their own operations.
type UpdateClassRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=50"`
	GradeLevel *int    `json:"grade_level" validate:"omitempty,min=1"`
	Section    *string `json:"section" validate:"omitempty,max=100"`

	MaxStudents *int `json:"max_students" validate:"omitempty,min=1"`

	Room         *string `json:"room" validate:"omitempty,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	AcademicYear *string `json:"academic_year" validate:"omitempty,max=20"`
}

func (r *UpdateClassRequest) ApplyToModel(m *academicModel.SchoolClassModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.GradeLevel != nil {
		m.GradeLevel = *r.GradeLevel
	}
	if r.Section != nil {
		m.Section = r.Section
	}
	if r.MaxStudents != nil {
		m.MaxStudents = r.MaxStudents
	}
	if r.Room != nil {
		m.Room = r.Room
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.AcademicYear != nil {
		m.AcademicYear = r.AcademicYear
	}
}

/* ===================== RESPONSES ===================== */

type ClassResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	GradeLevel int       `json:"grade_level"`
	Section    *string   `json:"section,omitempty"`

	MaxStudents  *int `json:"max_students,omitempty"`
	StudentCount int  `json:"student_count"`

	ClassTeacherID *uuid.UUID       `json:"class_teacher_id,omitempty"`
	ClassTeacher   *TeacherResponse `json:"class_teacher,omitempty"`

	Students []StudentResponse `json:"students,omitempty"`
	Subjects []SubjectResponse `json:"subjects,omitempty"`

	Room         *string `json:"room,omitempty"`
	Description  *string `json:"description,omitempty"`
	AcademicYear *string `json:"academic_year,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewClassResponse(m *academicModel.SchoolClassModel) *ClassResponse {
	if m == nil {
		return nil
	}
	return &ClassResponse{
		ID:             m.ID,
		Name:           m.Name,
		GradeLevel:     m.GradeLevel,
		Section:        m.Section,
		MaxStudents:    m.MaxStudents,
		StudentCount:   len(m.Students),
		ClassTeacherID: m.ClassTeacherID,
		ClassTeacher:   NewTeacherResponse(m.ClassTeacher),
		Students:       NewStudentResponses(m.Students),
		Subjects:       NewSubjectResponses(m.Subjects),
		Room:           m.Room,
		Description:    m.Description,
		AcademicYear:   m.AcademicYear,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func NewClassResponses(ms []academicModel.SchoolClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewClassResponse(&ms[i]))
	}
	return out
}
