package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "school_backend/internals/features/users/user/model"
)

// TeacherModel carries the employment profile plus the taught subjects
// and classes. Both m2m sides are written in the same transaction so
// the links never diverge.
type TeacherModel struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`

	User *userModel.UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`

	EmployeeID     string         `gorm:"size:20;uniqueIndex;not null" json:"employee_id"`
	HireDate       datatypes.Date `gorm:"not null" json:"hire_date"`
	Specialization *string        `gorm:"size:200" json:"specialization,omitempty"`
	Qualifications *string        `gorm:"size:500" json:"qualifications,omitempty"`
	Notes          *string        `gorm:"size:500" json:"notes,omitempty"`

	Subjects []SubjectModel `gorm:"many2many:teacher_subjects;joinForeignKey:TeacherID;joinReferences:SubjectID" json:"subjects,omitempty"`
	// teacher_classes is populated out-of-band; the services only read
	// it (ListTeachersByClass and its inverse), there is no assign op.
	Classes []SchoolClassModel `gorm:"many2many:teacher_classes;joinForeignKey:TeacherID;joinReferences:ClassID" json:"classes,omitempty"`

	// Set exactly when some school_classes row points here via
	// class_teacher_id (unique, so at most one).
	IsClassTeacher bool              `gorm:"not null;default:false" json:"is_class_teacher"`
	MainClass      *SchoolClassModel `gorm:"foreignKey:ClassTeacherID" json:"main_class,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
