package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
Permission types (closed set, matches the permission_type enum in DB):
- CREATE / READ / UPDATE / DELETE / MANAGE
*/
type PermissionType string

const (
	PermissionCreate PermissionType = "CREATE"
	PermissionRead   PermissionType = "READ"
	PermissionUpdate PermissionType = "UPDATE"
	PermissionDelete PermissionType = "DELETE"
	PermissionManage PermissionType = "MANAGE"
)

// Normalize to upper-case on scan/save so lookups never depend on casing.
func (t *PermissionType) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*t = PermissionType(strings.ToUpper(strings.TrimSpace(v)))
	case []byte:
		*t = PermissionType(strings.ToUpper(strings.TrimSpace(string(v))))
	case nil:
		*t = ""
	}
	return nil
}

func (t PermissionType) Value() (driver.Value, error) {
	return strings.ToUpper(strings.TrimSpace(string(t))), nil
}

func (t PermissionType) Valid() bool {
	switch t {
	case PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete, PermissionManage:
		return true
	}
	return false
}

type PermissionModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name         string         `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description  *string        `gorm:"size:200" json:"description,omitempty"`
	ResourceName string         `gorm:"size:50;not null" json:"resource_name"`
	Type         PermissionType `gorm:"type:varchar(10);not null" json:"type"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PermissionModel) TableName() string { return "permissions" }

func (p *PermissionModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Key is the entry stored in the materialized permission set of a JWT
// claim, e.g. "STUDENTS:CREATE".
func (p *PermissionModel) Key() string {
	return p.ResourceName + ":" + string(p.Type)
}
