package dbmodels

import (
	"time"
)

type Role struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(125);not null;uniqueIndex:idx_roles_name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Permissions []Permission `gorm:"many2many:role_has_permissions;" json:"permissions,omitempty"`
}

func (m *Role) TableName() string {
	return "roles"
}

type Permission struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(125);not null;uniqueIndex:idx_permissions_name" json:"name"`
}

func (m *Permission) TableName() string {
	return "permissions"
}
