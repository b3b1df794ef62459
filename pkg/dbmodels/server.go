package dbmodels

import (
	"time"
)

// Server is a processing node that analytic jobs get assigned to.
// Capacity is tracked only for the activity-monitoring dimension; the
// counters are maintained with conditional updates so cur never
// exceeds max.
type Server struct {
	ID                    uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                  string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Ip                    string    `gorm:"column:ip;type:varchar(45);not null;uniqueIndex:idx_servers_ip" json:"ip"`
	Location              string    `gorm:"column:location;type:varchar(255)" json:"location"`
	Status                string    `gorm:"column:status;type:varchar(20);default:'offline'" json:"status"`
	MaxActivityMonitoring int64     `gorm:"column:max_activity_monitoring;default:0;not null" json:"max_activity_monitoring"`
	CurActivityMonitoring int64     `gorm:"column:cur_activity_monitoring;default:0;not null" json:"cur_activity_monitoring"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (m *Server) TableName() string {
	return "servers"
}

// AvailableActivityMonitoring is max minus current.
func (m *Server) AvailableActivityMonitoring() int64 {
	return m.MaxActivityMonitoring - m.CurActivityMonitoring
}

// UtilizationActivityMonitoring is current over max; a server with no
// configured capacity counts as fully utilized.
func (m *Server) UtilizationActivityMonitoring() float64 {
	if m.MaxActivityMonitoring <= 0 {
		return 1
	}
	return float64(m.CurActivityMonitoring) / float64(m.MaxActivityMonitoring)
}
