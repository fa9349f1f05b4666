package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "school_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,min=2,max=50"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
}

// ApplyToModel patches only the mutable identity fields. Email, the
// credential hash and the lifecycle flags are never overwritten here.
func (r *UpdateUserRequest) ApplyToModel(m *userModel.UserModel) {
	if r.FirstName != nil {
		m.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.LastName = *r.LastName
	}
	if r.PhoneNumber != nil {
		m.PhoneNumber = r.PhoneNumber
	}
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`

	Roles []string `json:"roles"`

	IsActive            bool       `json:"is_active"`
	MustChangePassword  bool       `json:"must_change_password"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
	FailedLoginAttempts int        `json:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `json:"account_locked_until,omitempty"`
	AccountExpired      bool       `json:"account_expired"`
	CredentialsExpired  bool       `json:"credentials_expired"`
	AccountLocked       bool       `json:"account_locked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(m *userModel.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	roles := make([]string, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, r.Name)
	}
	return &UserResponse{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,

		Roles: roles,

		IsActive:            m.IsActive,
		MustChangePassword:  m.MustChangePassword,
		LastLogin:           m.LastLogin,
		FailedLoginAttempts: m.FailedLoginAttempts,
		AccountLockedUntil:  m.AccountLockedUntil,
		AccountExpired:      m.AccountExpired,
		CredentialsExpired:  m.CredentialsExpired,
		AccountLocked:       m.AccountLocked,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewUserResponses(ms []userModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewUserResponse(&ms[i]))
	}
	return out
}
