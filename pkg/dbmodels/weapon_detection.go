package dbmodels

import (
	"time"
)

type WeaponDetection struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PrimaryAnalyticID uint64    `gorm:"column:primary_analytic_id;not null;index:idx_weapon_detections_pa_id" json:"primary_analytic_id"`
	CctvID            uint64    `gorm:"column:cctv_id;not null;index:idx_weapon_detections_cctv_id" json:"cctv_id"`
	Category          string    `gorm:"column:category;type:varchar(50);not null" json:"category"`
	Confidence        float64   `gorm:"column:confidence;type:double;default:0;not null" json:"confidence"`
	Image             string    `gorm:"column:image;type:varchar(500)" json:"image"`
	DetectedAt        time.Time `gorm:"column:detected_at;not null;index:idx_weapon_detections_detected_at" json:"detected_at"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	PrimaryAnalytic *PrimaryAnalytic `gorm:"foreignKey:PrimaryAnalyticID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"primary_analytic,omitempty"`
	Cctv            *Cctv            `gorm:"foreignKey:CctvID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"cctv,omitempty"`
}

func (m *WeaponDetection) TableName() string {
	return "weapon_detections"
}
