package dbmodels

import (
	"time"
)

type ActivityMonitoring struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PrimaryAnalyticID uint64    `gorm:"column:primary_analytic_id;not null;index:idx_activity_monitorings_pa_id" json:"primary_analytic_id"`
	CctvID            uint64    `gorm:"column:cctv_id;not null;index:idx_activity_monitorings_cctv_id" json:"cctv_id"`
	Category          string    `gorm:"column:category;type:varchar(50);not null" json:"category"`
	PersonCount       int64     `gorm:"column:person_count;default:0;not null" json:"person_count"`
	Image             string    `gorm:"column:image;type:varchar(500)" json:"image"`
	DetectedAt        time.Time `gorm:"column:detected_at;not null;index:idx_activity_monitorings_detected_at" json:"detected_at"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	PrimaryAnalytic *PrimaryAnalytic `gorm:"foreignKey:PrimaryAnalyticID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"primary_analytic,omitempty"`
	Cctv            *Cctv            `gorm:"foreignKey:CctvID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"cctv,omitempty"`
}

func (m *ActivityMonitoring) TableName() string {
	return "activity_monitorings"
}
