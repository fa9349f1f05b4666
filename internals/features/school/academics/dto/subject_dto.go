package dto

import (
	"time"

	"github.com/google/uuid"

	academicModel "school_backend/internals/features/school/academics/model"
)

/* ===================== REQUESTS ===================== */

type CreateSubjectRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Code        string  `json:"code" validate:"required,max=20"`
	GradeLevel  int     `json:"grade_level" validate:"required,min=1"`
	Description *string `json:"description" validate:"omitempty,max=500"`

	Credits       *int    `json:"credits" validate:"omitempty,min=0"`
	IsElective    bool    `json:"is_elective"`
	Prerequisites *string `json:"prerequisites" validate:"omitempty,max=500"`
	Department    *string `json:"department" validate:"omitempty,max=100"`
	PassingGrade  *int    `json:"passing_grade" validate:"omitempty,min=0,max=100"`
}

func (r *CreateSubjectRequest) ToModel() *academicModel.SubjectModel {
	return &academicModel.SubjectModel{
		Name:          r.Name,
		Code:          r.Code,
		GradeLevel:    r.GradeLevel,
		Description:   r.Description,
		Credits:       r.Credits,
		IsElective:    r.IsElective,
		Prerequisites: r.Prerequisites,
		Department:    r.Department,
		PassingGrade:  r.PassingGrade,
		IsActive:      true,
	}
}

// UpdateSubjectRequest patches mutable fields; code stays fixed.
type UpdateSubjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	GradeLevel  *int    `json:"grade_level" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,max=500"`

	Credits       *int    `json:"credits" validate:"omitempty,min=0"`
	IsElective    *bool   `json:"is_elective"`
	Prerequisites *string `json:"prerequisites" validate:"omitempty,max=500"`
	Department    *string `json:"department" validate:"omitempty,max=100"`
	PassingGrade  *int    `json:"passing_grade" validate:"omitempty,min=0,max=100"`
}

func (r *UpdateSubjectRequest) ApplyToModel(m *academicModel.SubjectModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.GradeLevel != nil {
		m.GradeLevel = *r.GradeLevel
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.Credits != nil {
		m.Credits = r.Credits
	}
	if r.IsElective != nil {
		m.IsElective = *r.IsElective
	}
	if r.Prerequisites != nil {
		m.Prerequisites = r.Prerequisites
	}
	if r.Department != nil {
		m.Department = r.Department
	}
	if r.PassingGrade != nil {
		m.PassingGrade = r.PassingGrade
	}
}

/* ===================== RESPONSES ===================== */

type SubjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	GradeLevel  int       `json:"grade_level"`
	Description *string   `json:"description,omitempty"`

	Credits       *int    `json:"credits,omitempty"`
	IsElective    bool    `json:"is_elective"`
	Prerequisites *string `json:"prerequisites,omitempty"`
	Department    *string `json:"department,omitempty"`
	PassingGrade  *int    `json:"passing_grade,omitempty"`

	TeacherIDs []uuid.UUID `json:"teacher_ids,omitempty"`
	ClassIDs   []uuid.UUID `json:"class_ids,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSubjectResponse(m *academicModel.SubjectModel) *SubjectResponse {
	if m == nil {
		return nil
	}
	resp := &SubjectResponse{
		ID:            m.ID,
		Name:          m.Name,
		Code:          m.Code,
		GradeLevel:    m.GradeLevel,
		Description:   m.Description,
		Credits:       m.Credits,
		IsElective:    m.IsElective,
		Prerequisites: m.Prerequisites,
		Department:    m.Department,
		PassingGrade:  m.PassingGrade,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for i := range m.Teachers {
		resp.TeacherIDs = append(resp.TeacherIDs, m.Teachers[i].ID)
	}
	for i := range m.Classes {
		resp.ClassIDs = append(resp.ClassIDs, m.Classes[i].ID)
	}
	return resp
}

func NewSubjectResponses(ms []academicModel.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewSubjectResponse(&ms[i]))
	}
	return out
}
