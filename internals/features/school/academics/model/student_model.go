package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "school_backend/internals/features/users/user/model"
)

/*
Gender (closed set, stored as text):
- MALE / FEMALE / OTHER
*/
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g *Gender) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*g = Gender(strings.ToUpper(strings.TrimSpace(v)))
	case []byte:
		*g = Gender(strings.ToUpper(strings.TrimSpace(string(v))))
	case nil:
		*g = ""
	}
	return nil
}

func (g Gender) Value() (driver.Value, error) {
	return strings.ToUpper(strings.TrimSpace(string(g))), nil
}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// StudentModel is the academic profile. The login account is a separate
// users row linked 1:1; deactivating the profile cascades to it.
type StudentModel struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`

	User *userModel.UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`

	StudentID    string          `gorm:"size:20;uniqueIndex;not null" json:"student_id"`
	DateOfBirth  datatypes.Date  `gorm:"not null" json:"date_of_birth"`
	PlaceOfBirth *string         `gorm:"size:100" json:"place_of_birth,omitempty"`
	Gender       Gender          `gorm:"type:varchar(10);not null" json:"gender"`
	Nationality  *string         `gorm:"size:100" json:"nationality,omitempty"`
	Address      *string         `gorm:"size:200" json:"address,omitempty"`
	MedicalInfo  *string         `gorm:"size:500" json:"medical_info,omitempty"`
	Notes        *string         `gorm:"size:500" json:"notes,omitempty"`

	ClassID *uuid.UUID        `gorm:"type:uuid;index" json:"class_id,omitempty"`
	Class   *SchoolClassModel `gorm:"foreignKey:ClassID" json:"class,omitempty"`

	EnrollmentDate *datatypes.Date `json:"enrollment_date,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
