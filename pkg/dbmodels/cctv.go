package dbmodels

import (
	"time"
)

type Cctv struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	IpAddress  string    `gorm:"column:ip_address;type:varchar(45);not null;uniqueIndex:idx_cctv_ip_address" json:"ip_address"`
	RtspUrl    string    `gorm:"column:rtsp_url;type:varchar(500);not null" json:"rtsp_url"`
	Location   string    `gorm:"column:location;type:varchar(255)" json:"location"`
	Status     string    `gorm:"column:status;type:varchar(20);default:'offline'" json:"status"`
	PolygonImg string    `gorm:"column:polygon_img;type:varchar(500)" json:"polygon_img"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (m *Cctv) TableName() string {
	return "cctv"
}
