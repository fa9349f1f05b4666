package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolClassModel. Membership is derived from students.class_id, never
// stored twice. class_teacher_id is unique: a teacher leads at most one
// class.
type SchoolClassModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	GradeLevel int       `gorm:"not null" json:"grade_level"`
	Section    *string   `gorm:"size:100" json:"section,omitempty"`

	// Nil means unlimited.
	MaxStudents *int `json:"max_students,omitempty"`

	ClassTeacherID *uuid.UUID    `gorm:"type:uuid;uniqueIndex" json:"class_teacher_id,omitempty"`
	ClassTeacher   *TeacherModel `gorm:"foreignKey:ClassTeacherID" json:"class_teacher,omitempty"`

	Students []StudentModel `gorm:"foreignKey:ClassID" json:"students,omitempty"`
	Subjects []SubjectModel `gorm:"many2many:class_subjects;joinForeignKey:ClassID;joinReferences:SubjectID" json:"subjects,omitempty"`

	Room         *string `gorm:"size:200" json:"room,omitempty"`
	Description  *string `gorm:"size:500" json:"description,omitempty"`
	AcademicYear *string `gorm:"size:20" json:"academic_year,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SchoolClassModel) TableName() string { return "school_classes" }

func (m *SchoolClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
