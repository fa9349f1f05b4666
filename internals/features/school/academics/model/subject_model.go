package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Code        string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	GradeLevel  int       `gorm:"not null" json:"grade_level"`
	Description *string   `gorm:"size:500" json:"description,omitempty"`

	Credits       *int    `json:"credits,omitempty"`
	IsElective    bool    `gorm:"not null;default:false" json:"is_elective"`
	Prerequisites *string `gorm:"size:500" json:"prerequisites,omitempty"`
	Department    *string `gorm:"size:100" json:"department,omitempty"`
	PassingGrade  *int    `json:"passing_grade,omitempty"`

	Teachers []TeacherModel     `gorm:"many2many:teacher_subjects;joinForeignKey:SubjectID;joinReferences:TeacherID" json:"teachers,omitempty"`
	Classes  []SchoolClassModel `gorm:"many2many:class_subjects;joinForeignKey:SubjectID;joinReferences:ClassID" json:"classes,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
