package dbmodels

import (
	"time"
)

// PrimaryAnalytic is a configured analytic job instance bound to one or
// more CCTVs, a server and a type.
type PrimaryAnalytic struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	ServerID          uint64    `gorm:"column:server_id;not null;index:idx_primary_analytics_server_id" json:"server_id"`
	TypeAnalyticID    int64     `gorm:"column:type_analytic_id;not null;index:idx_primary_analytics_type_id" json:"type_analytic_id"`
	SubTypeAnalyticID *int64    `gorm:"column:sub_type_analytic_id" json:"sub_type_analytic_id,omitempty"`
	IsActive          int       `gorm:"column:is_active;default:1;not null" json:"is_active"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Server       *Server       `gorm:"foreignKey:ServerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"server,omitempty"`
	TypeAnalytic *TypeAnalytic `gorm:"foreignKey:TypeAnalyticID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"type_analytic,omitempty"`
	Cctvs        []Cctv        `gorm:"many2many:primary_analytic_cctvs;" json:"cctvs,omitempty"`
}

func (m *PrimaryAnalytic) TableName() string {
	return "primary_analytics"
}
