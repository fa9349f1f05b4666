package dto

import (
	"time"

	"github.com/google/uuid"

	academicModel "school_backend/internals/features/school/academics/model"
	authDTO "school_backend/internals/features/users/auth/dto"
	userDTO "school_backend/internals/features/users/user/dto"
)

/* ===================== REQUESTS ===================== */

type CreateTeacherRequest struct {
	Account authDTO.RegisterRequest `json:"account" validate:"required"`

	EmployeeID     string  `json:"employee_id" validate:"required,max=20"`
	HireDate       string  `json:"hire_date" validate:"required,datetime=2006-01-02"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
	Qualifications *string `json:"qualifications" validate:"omitempty,max=500"`
	Notes          *string `json:"notes" validate:"omitempty,max=500"`
}

func (r *CreateTeacherRequest) ToModel(userID uuid.UUID) *academicModel.TeacherModel {
	return &academicModel.TeacherModel{
		UserID:         &userID,
		EmployeeID:     r.EmployeeID,
		HireDate:       toDate(r.HireDate),
		Specialization: r.Specialization,
		Qualifications: r.Qualifications,
		Notes:          r.Notes,
		IsActive:       true,
	}
}

// UpdateTeacherRequest patches the mutable fields; employee_id, user_id
// and the class-teacher flag are managed elsewhere.
type UpdateTeacherRequest struct {
	HireDate       *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
	Qualifications *string `json:"qualifications" validate:"omitempty,max=500"`
	Notes          *string `json:"notes" validate:"omitempty,max=500"`
}

func (r *UpdateTeacherRequest) ApplyToModel(m *academicModel.TeacherModel) {
	if r.HireDate != nil {
		m.HireDate = toDate(*r.HireDate)
	}
	if r.Specialization != nil {
		m.Specialization = r.Specialization
	}
	if r.Qualifications != nil {
		m.Qualifications = r.Qualifications
	}
	if r.Notes != nil {
		m.Notes = r.Notes
	}
}

/* ===================== RESPONSES ===================== */

type TeacherResponse struct {
	ID     uuid.UUID  `json:"id"`
	UserID *uuid.UUID `json:"user_id,omitempty"`

	User *userDTO.UserResponse `json:"user,omitempty"`

	EmployeeID     string  `json:"employee_id"`
	HireDate       string  `json:"hire_date"`
	Specialization *string `json:"specialization,omitempty"`
	Qualifications *string `json:"qualifications,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	IsClassTeacher bool       `json:"is_class_teacher"`
	MainClassID    *uuid.UUID `json:"main_class_id,omitempty"`

	SubjectCodes []string `json:"subject_codes,omitempty"`
	ClassNames   []string `json:"class_names,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTeacherResponse(m *academicModel.TeacherModel) *TeacherResponse {
	if m == nil {
		return nil
	}
	resp := &TeacherResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		User:           userDTO.NewUserResponse(m.User),
		EmployeeID:     m.EmployeeID,
		HireDate:       fromDate(m.HireDate),
		Specialization: m.Specialization,
		Qualifications: m.Qualifications,
		Notes:          m.Notes,
		IsClassTeacher: m.IsClassTeacher,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.MainClass != nil {
		resp.MainClassID = &m.MainClass.ID
	}
	for i := range m.Subjects {
		resp.SubjectCodes = append(resp.SubjectCodes, m.Subjects[i].Code)
	}
	for i := range m.Classes {
		resp.ClassNames = append(resp.ClassNames, m.Classes[i].Name)
	}
	return resp
}

func NewTeacherResponses(ms []academicModel.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewTeacherResponse(&ms[i]))
	}
	return out
}
