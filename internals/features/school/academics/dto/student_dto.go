package dto

import (
	"time"

	"github.com/google/uuid"

	academicModel "school_backend/internals/features/school/academics/model"
	authDTO "school_backend/internals/features/users/auth/dto"
	userDTO "school_backend/internals/features/users/user/dto"
)

/* ===================== REQUESTS ===================== */

// CreateStudentRequest admits a student: the login account and the
// profile are created in one transaction.
type CreateStudentRequest struct {
	Account authDTO.RegisterRequest `json:"account" validate:"required"`

	StudentID    string  `json:"student_id" validate:"required,max=20"`
	DateOfBirth  string  `json:"date_of_birth" validate:"required,datetime=2006-01-02,past_date"`
	PlaceOfBirth *string `json:"place_of_birth" validate:"omitempty,max=100"`
	Gender       string  `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Nationality  *string `json:"nationality" validate:"omitempty,max=100"`
	Address      *string `json:"address" validate:"omitempty,max=200"`
	MedicalInfo  *string `json:"medical_info" validate:"omitempty,max=500"`
	Notes        *string `json:"notes" validate:"omitempty,max=500"`

	EnrollmentDate *string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateStudentRequest) ToModel(userID uuid.UUID) *academicModel.StudentModel {
	return &academicModel.StudentModel{
		UserID:         &userID,
		StudentID:      r.StudentID,
		DateOfBirth:    toDate(r.DateOfBirth),
		PlaceOfBirth:   r.PlaceOfBirth,
		Gender:         academicModel.Gender(r.Gender),
		Nationality:    r.Nationality,
		Address:        r.Address,
		MedicalInfo:    r.MedicalInfo,
		Notes:          r.Notes,
		EnrollmentDate: toDatePtr(r.EnrollmentDate),
		IsActive:       true,
	}
}

// UpdateStudentRequest patches the mutable profile fields. student_id,
// user_id and class_id are never writable here; enrollment moves go
// through the class service.
type UpdateStudentRequest struct {
	DateOfBirth  *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02,past_date"`
	PlaceOfBirth *string `json:"place_of_birth" validate:"omitempty,max=100"`
	Gender       *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Nationality  *string `json:"nationality" validate:"omitempty,max=100"`
	Address      *string `json:"address" validate:"omitempty,max=200"`
	MedicalInfo  *string `json:"medical_info" validate:"omitempty,max=500"`
	Notes        *string `json:"notes" validate:"omitempty,max=500"`

	EnrollmentDate *string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateStudentRequest) ApplyToModel(m *academicModel.StudentModel) {
	if r.DateOfBirth != nil {
		m.DateOfBirth = toDate(*r.DateOfBirth)
	}
	if r.PlaceOfBirth != nil {
		m.PlaceOfBirth = r.PlaceOfBirth
	}
	if r.Gender != nil {
		m.Gender = academicModel.Gender(*r.Gender)
	}
	if r.Nationality != nil {
		m.Nationality = r.Nationality
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.MedicalInfo != nil {
		m.MedicalInfo = r.MedicalInfo
	}
	if r.Notes != nil {
		m.Notes = r.Notes
	}
	if r.EnrollmentDate != nil {
		m.EnrollmentDate = toDatePtr(r.EnrollmentDate)
	}
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	ID     uuid.UUID  `json:"id"`
	UserID *uuid.UUID `json:"user_id,omitempty"`

	User *userDTO.UserResponse `json:"user,omitempty"`

	StudentID    string  `json:"student_id"`
	DateOfBirth  string  `json:"date_of_birth"`
	PlaceOfBirth *string `json:"place_of_birth,omitempty"`
	Gender       string  `json:"gender"`
	Nationality  *string `json:"nationality,omitempty"`
	Address      *string `json:"address,omitempty"`
	MedicalInfo  *string `json:"medical_info,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	ClassID        *uuid.UUID `json:"class_id,omitempty"`
	ClassName      *string    `json:"class_name,omitempty"`
	EnrollmentDate *string    `json:"enrollment_date,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewStudentResponse(m *academicModel.StudentModel) *StudentResponse {
	if m == nil {
		return nil
	}
	resp := &StudentResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		User:           userDTO.NewUserResponse(m.User),
		StudentID:      m.StudentID,
		DateOfBirth:    fromDate(m.DateOfBirth),
		PlaceOfBirth:   m.PlaceOfBirth,
		Gender:         string(m.Gender),
		Nationality:    m.Nationality,
		Address:        m.Address,
		MedicalInfo:    m.MedicalInfo,
		Notes:          m.Notes,
		ClassID:        m.ClassID,
		EnrollmentDate: fromDatePtr(m.EnrollmentDate),
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Class != nil {
		resp.ClassName = &m.Class.Name
	}
	return resp
}

func NewStudentResponses(ms []academicModel.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewStudentResponse(&ms[i]))
	}
	return out
}
