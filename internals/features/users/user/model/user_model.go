package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	rbacModel "school_backend/internals/features/users/rbac/model"
)

// UserModel is the identity/credential record behind a login, distinct
// from a Student/Teacher profile. Soft-deactivated via IsActive; never
// physically removed.
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	FirstName   string    `gorm:"size:50;not null" json:"first_name"`
	LastName    string    `gorm:"size:50;not null" json:"last_name"`
	Email       string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"size:120;not null" json:"-"`
	PhoneNumber *string   `gorm:"size:20" json:"phone_number,omitempty"`

	Roles []rbacModel.RoleModel `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID" json:"roles,omitempty"`

	IsActive           bool       `gorm:"not null;default:true" json:"is_active"`
	MustChangePassword bool       `gorm:"not null;default:false" json:"must_change_password"`
	LastLogin          *time.Time `json:"last_login,omitempty"`

	// Lockout bookkeeping. Kept on the record and surfaced in responses,
	// but Login does not increment or enforce them (policy extension point).
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `json:"account_locked_until,omitempty"`
	AccountExpired      bool       `gorm:"not null;default:false" json:"account_expired"`
	CredentialsExpired  bool       `gorm:"not null;default:false" json:"credentials_expired"`
	AccountLocked       bool       `gorm:"not null;default:false" json:"account_locked"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) FullName() string {
	return u.FirstName + " " + u.LastName
}
