package dbmodels

import (
	"time"
)

type AnimalPopulation struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PrimaryAnalyticID uint64    `gorm:"column:primary_analytic_id;not null;index:idx_animal_populations_pa_id" json:"primary_analytic_id"`
	CctvID            uint64    `gorm:"column:cctv_id;not null;index:idx_animal_populations_cctv_id" json:"cctv_id"`
	Category          string    `gorm:"column:category;type:varchar(50);not null" json:"category"`
	Count             int64     `gorm:"column:count;default:0;not null" json:"count"`
	DetectedAt        time.Time `gorm:"column:detected_at;not null;index:idx_animal_populations_detected_at" json:"detected_at"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (m *AnimalPopulation) TableName() string {
	return "animal_populations"
}

type PpeDetection struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PrimaryAnalyticID uint64    `gorm:"column:primary_analytic_id;not null;index:idx_ppe_detections_pa_id" json:"primary_analytic_id"`
	CctvID            uint64    `gorm:"column:cctv_id;not null;index:idx_ppe_detections_cctv_id" json:"cctv_id"`
	Category          string    `gorm:"column:category;type:varchar(50);not null" json:"category"`
	DetectedAt        time.Time `gorm:"column:detected_at;not null;index:idx_ppe_detections_detected_at" json:"detected_at"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (m *PpeDetection) TableName() string {
	return "ppe_detections"
}

// NomorLambung stores hull-number OCR readings.
type NomorLambung struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PrimaryAnalyticID uint64    `gorm:"column:primary_analytic_id;not null;index:idx_nomor_lambungs_pa_id" json:"primary_analytic_id"`
	CctvID            uint64    `gorm:"column:cctv_id;not null;index:idx_nomor_lambungs_cctv_id" json:"cctv_id"`
	Category          string    `gorm:"column:category;type:varchar(50);not null" json:"category"`
	PlateNumber       string    `gorm:"column:plate_number;type:varchar(50)" json:"plate_number"`
	DetectedAt        time.Time `gorm:"column:detected_at;not null;index:idx_nomor_lambungs_detected_at" json:"detected_at"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (m *NomorLambung) TableName() string {
	return "nomor_lambungs"
}
