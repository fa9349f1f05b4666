package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleModel owns a set of permissions. Authorization checks always see
// the fully materialized set: every read path preloads Permissions,
// never a lazy handle.
type RoleModel struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name        string            `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description *string           `gorm:"size:200" json:"description,omitempty"`
	Permissions []PermissionModel `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID" json:"permissions"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RoleModel) TableName() string { return "roles" }

func (r *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
