package dbmodels

import (
	"time"
)

// TypeAnalytic classifies what a primary analytic detects.
type TypeAnalytic struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_type_analytics_name" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(255);not null" json:"slug"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	SubTypes []SubTypeAnalytic `gorm:"foreignKey:TypeAnalyticID" json:"sub_types,omitempty"`
}

func (m *TypeAnalytic) TableName() string {
	return "type_analytics"
}

type SubTypeAnalytic struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TypeAnalyticID int64     `gorm:"column:type_analytic_id;not null;index:idx_sub_type_analytics_type_id" json:"type_analytic_id"`
	Name           string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (m *SubTypeAnalytic) TableName() string {
	return "sub_type_analytics"
}
